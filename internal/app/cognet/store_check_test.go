package cognet_test

import (
	"github.com/heartmarshall/cognet-graph/internal/adapter/langname"
	"github.com/heartmarshall/cognet-graph/internal/adapter/postgres/cognates"
	"github.com/heartmarshall/cognet-graph/internal/app/cognet"
)

// Compile-time checks for the adapters wired by cmd/cognet.
var (
	_ cognet.CognateStore  = (*cognates.Repo)(nil)
	_ cognet.LanguageNamer = (*langname.Namer)(nil)
)
