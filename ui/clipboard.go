package ui

import "github.com/atotto/clipboard"

// writeClipboard is swapped out in tests, CI machines have no clipboard.
var writeClipboard = clipboard.WriteAll
