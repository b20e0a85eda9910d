package apiv1

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAPIDocumentIsValid(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../public/docs/v1/openapi.yml")
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
}

func TestOpenAPIDocumentCoversRegisteredRoutes(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../public/docs/v1/openapi.yml")
	require.NoError(t, err)

	expected := map[string]string{
		"/ping":                 "GET",
		"/slots/{slug}/access":  "GET",
		"/slots/{slug}/content": "GET",
		"/slots/{slug}/variant": "GET",
		"/checkout":             "POST",
		"/checkout/verify":      "POST",
	}

	for path, method := range expected {
		item := doc.Paths.Find(path)
		require.NotNilf(t, item, "path %s missing from document", path)
		assert.NotNilf(t, item.GetOperation(method), "operation %s %s missing from document", method, path)
	}
}
