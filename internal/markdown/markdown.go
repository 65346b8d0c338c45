package markdown

import (
	"regexp"
	"strings"
)

// BlockKind discriminates the two top-level block shapes: fenced code and
// plain text runs.
type BlockKind int

const (
	KindText BlockKind = iota
	KindCode
)

// Block is one top-level chunk of a document. Code blocks carry their fence
// language; Runnable marks script languages that get an execute affordance.
type Block struct {
	Kind     BlockKind
	Text     string // KindText: raw lines
	Lang     string // KindCode
	Code     string // KindCode, fence contents trimmed
	Runnable bool
}

var fenceRe = regexp.MustCompile("(?s)```(\\w+)?\\n(.*?)```")

// scriptLangs are the fence languages that may be executed from a note.
var scriptLangs = map[string]bool{
	"js":         true,
	"javascript": true,
	"sh":         true,
	"bash":       true,
}

// Blocks splits content into text runs and fenced code blocks. Fences are
// extracted first; everything between them is passed through as text.
func Blocks(content string) []Block {
	var blocks []Block
	last := 0
	for _, loc := range fenceRe.FindAllStringSubmatchIndex(content, -1) {
		if loc[0] > last {
			blocks = append(blocks, Block{Kind: KindText, Text: content[last:loc[0]]})
		}
		lang := "text"
		if loc[2] >= 0 {
			lang = content[loc[2]:loc[3]]
		}
		code := strings.TrimSpace(content[loc[4]:loc[5]])
		blocks = append(blocks, Block{
			Kind:     KindCode,
			Lang:     lang,
			Code:     code,
			Runnable: scriptLangs[lang],
		})
		last = loc[1]
	}
	if last < len(content) {
		blocks = append(blocks, Block{Kind: KindText, Text: content[last:]})
	}
	return blocks
}

// Scripts returns the runnable code blocks of a document, in order.
func Scripts(content string) []Block {
	var scripts []Block
	for _, b := range Blocks(content) {
		if b.Kind == KindCode && b.Runnable {
			scripts = append(scripts, b)
		}
	}
	return scripts
}

// WikiLinks returns the [[name]] references in a document, in order of
// appearance.
func WikiLinks(content string) []string {
	var names []string
	for _, m := range wikiRe.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}
	return names
}
