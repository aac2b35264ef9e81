// Package java defines the Java ecosystem: config parsing for pom.xml and
// build.gradle. Java has no latest-version source wired; the engine keeps
// the "latest" sentinel for unresolved Java dependencies.
package java

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

// Ecosystem provides Java detection and manifest parsing.
var Ecosystem = &ecosystem.Ecosystem{
	Name:       "java",
	Extensions: []string{".java"},
	ManifestFiles: []string{
		"pom.xml",
		"build.gradle",
	},
	ImportPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+)\s*;`),
	},
	DefinitionPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*(?:public|protected|private)[\w\s<>\[\],]*\s[\w]+\s*\([^)]*\)\s*\{`),
	},
	ParseConfig:   parseConfig,
	NormalizeName: normalize,
	RootSymbol:    rootSymbol,
}

// normalize lowercases and keeps Maven "group:artifact" coordinates intact.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// rootSymbol reduces "org.apache.commons.lang3.StringUtils" to the first
// three package segments, which is usually enough to identify the artifact.
// Platform imports (java.*, javax.*) yield "".
func rootSymbol(symbol string) string {
	parts := strings.Split(symbol, ".")
	if len(parts) == 0 || parts[0] == "java" || parts[0] == "javax" {
		return ""
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".")
}

func parseConfig(filename string, lines []string) []ecosystem.Declared {
	switch filename {
	case "pom.xml":
		return parsePOM(lines)
	case "build.gradle":
		return parseGradle(lines)
	default:
		return nil
	}
}

type pomProject struct {
	Dependencies struct {
		Dependency []struct {
			GroupID    string `xml:"groupId"`
			ArtifactID string `xml:"artifactId"`
			Version    string `xml:"version"`
		} `xml:"dependency"`
	} `xml:"dependencies"`
}

func parsePOM(lines []string) []ecosystem.Declared {
	var doc pomProject
	if err := xml.Unmarshal([]byte(strings.Join(lines, "\n")), &doc); err != nil {
		return nil
	}

	var deps []ecosystem.Declared
	for _, d := range doc.Dependencies.Dependency {
		if d.GroupID == "" || d.ArtifactID == "" {
			continue
		}
		version := d.Version
		// Property references like ${junit.version} cannot be resolved here
		if strings.Contains(version, "${") {
			version = ""
		}
		deps = append(deps, ecosystem.Declared{
			Name:    d.GroupID + ":" + d.ArtifactID,
			Version: ecosystem.CanonicalVersion(version),
		})
	}
	return deps
}

var gradleDepRE = regexp.MustCompile(`(?m)^\s*(?:implementation|api|compile|compileOnly|runtimeOnly|testImplementation)\s*\(?['"]([^:'"]+):([^:'"]+):([^'"]+)['"]\)?`)

func parseGradle(lines []string) []ecosystem.Declared {
	var deps []ecosystem.Declared
	for _, line := range lines {
		if m := gradleDepRE.FindStringSubmatch(line); m != nil {
			deps = append(deps, ecosystem.Declared{
				Name:    m[1] + ":" + m[2],
				Version: ecosystem.CanonicalVersion(m[3]),
			})
		}
	}
	return deps
}
