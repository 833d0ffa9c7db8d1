package engines

import (
	"github.com/tripweave/tripweave/components/vectordb/engines/chromem"
	"github.com/tripweave/tripweave/components/vectordb/engines/memory"
)

var (
	FromChromem = chromem.New
	FromMemory  = memory.New
)
