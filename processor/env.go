package processor

import (
	"fmt"

	"github.com/joho/godotenv"
)

// BaseURLKey is the .env variable holding an OpenAPI document's server URL.
const BaseURLKey = "BASEURL"

// EnvFile renders the .env file for a processed input. OpenAPI documents
// yield BASEURL set to the declared server URL; Postman collections yield
// one empty entry per {{variable}} URL prefix. It returns "" when there is
// nothing to write.
func (d *Definition) EnvFile() (string, error) {
	vars := make(map[string]string)
	if d.BaseURL != "" {
		vars[BaseURLKey] = d.BaseURL
	}
	for _, name := range d.EnvVars {
		vars[name] = ""
	}
	if len(vars) == 0 {
		return "", nil
	}

	text, err := godotenv.Marshal(vars)
	if err != nil {
		return "", fmt.Errorf("processor: rendering env file: %w", err)
	}
	return text + "\n", nil
}
