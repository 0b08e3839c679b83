package config

var defaults = map[string]any{
	"secret":    "",
	"token_ttl": 60, // minutes
	"log_level": "info",

	"timezone": "America/Sao_Paulo",

	"listen_addr":     ":5000",
	"request_timeout": 10, // seconds

	"storage.type":        "sqlite",
	"storage.sqlite.path": "./data/evaluations.db",
}

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}
