package keyset

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed words.txt
var wordList string

var words = sync.OnceValue(func() []string {
	return strings.Fields(wordList)
})
