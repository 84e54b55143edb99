package engine

import "strings"

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".idea":        true,
	".vscode":      true,
	"node_modules": true,
	"__pycache__":  true,
	"target":       true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".venv":        true,
	"venv":         true,
	"coverage":     true,
	"bin":          true,
	"obj":          true,
}

// noisy or non-text artifacts skipped before classification when default
// excludes are enabled
var defaultExcludeFileSuffixes = []string{
	".min.js", ".map",
	".lock",
	".pb.go", ".gen.go",
}

var defaultExcludeFileNames = map[string]bool{
	"yarn.lock":         true,
	"package-lock.json": true,
	"pnpm-lock.yaml":    true,
	"composer.lock":     true,
	"poetry.lock":       true,
	".DS_Store":         true,
}

// dotfiles still worth scanning despite the hidden-file skip
var keepDotfiles = map[string]bool{
	".env":            true,
	".gitignore":      true,
	".gitattributes":  true,
	".editorconfig":   true,
	ignoreFileLiteral: true,
}

const ignoreFileLiteral = ".leakscopeignore"

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name]
}

func isDefaultFileExcluded(lowerRel, base string) bool {
	if strings.HasPrefix(base, ".") && !keepDotfiles[base] {
		return true
	}
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lowerRel, s) {
			return true
		}
	}
	if defaultExcludeFileNames[base] {
		return true
	}
	return false
}
