package morfxtree

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	tsgo "github.com/smacker/go-tree-sitter/golang"
	tsjs "github.com/smacker/go-tree-sitter/javascript"
	tsphp "github.com/smacker/go-tree-sitter/php"
	tspy "github.com/smacker/go-tree-sitter/python"
	tsts "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Grounded on the teacher's internal/matcher.ResolveLanguage, generalized
// from Go-only to every grammar the example pack bundles.
var (
	registryMu sync.RWMutex
	registry   = map[string]*sitter.Language{
		"go":         tsgo.GetLanguage(),
		"golang":     tsgo.GetLanguage(),
		"javascript": tsjs.GetLanguage(),
		"js":         tsjs.GetLanguage(),
		"typescript": tsts.GetLanguage(),
		"ts":         tsts.GetLanguage(),
		"python":     tspy.GetLanguage(),
		"py":         tspy.GetLanguage(),
		"php":        tsphp.GetLanguage(),
	}
)

// Register makes an additional language handle available under name,
// letting callers plug in grammars beyond the bundled set.
func Register(name string, lang *sitter.Language) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = lang
}

// Resolve looks up a registered language handle by name.
func Resolve(name string) (*sitter.Language, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	l, ok := registry[name]
	return l, ok
}
