package api

import (
	"github.com/ezrec/vole/translate"
)

var f = translate.From
