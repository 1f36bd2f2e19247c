package interfaces

type Extension interface {
	Name() string
	Description() string
	Init(store *ExtensionStore)
	SetEnabled(enabled bool)
	IsEnabled() bool
}
