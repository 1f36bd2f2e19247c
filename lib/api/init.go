package api

import (
	"github.com/ether/wsclient-go/lib"
	"github.com/ether/wsclient-go/lib/api/endpointtypes"
	"github.com/ether/wsclient-go/lib/api/extensions"
	"github.com/ether/wsclient-go/lib/api/schema"
	"github.com/ether/wsclient-go/lib/api/services"
	"github.com/ether/wsclient-go/lib/api/stats"
)

func InitAPI(store *lib.InitStore) {
	services.Init(store)
	endpointtypes.Init(store)
	extensions.Init(store)
	schema.Init(store)
	stats.Init(store)
}
