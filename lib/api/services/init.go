package services

import "github.com/ether/wsclient-go/lib"

func Init(store *lib.InitStore) {
	store.PrivateAPI.Get("/services", ListServices(store))
	store.PrivateAPI.Post("/services", CreateService(store))
	store.PrivateAPI.Get("/services/:id", GetService(store))
	store.PrivateAPI.Put("/services/:id", UpdateService(store))
	store.PrivateAPI.Delete("/services/:id", DeleteService(store))
	store.PrivateAPI.Post("/services/:name/invoke", InvokeService(store))
}
