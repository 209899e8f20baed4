package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/fintrack/fintrack-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

type object = map[string]interface{}

// OpenAPI3Spec is the OpenAPI 3.0 document built from the generated Swagger 2.0 doc
type OpenAPI3Spec struct {
	OpenAPI    string   `json:"openapi"`
	Info       object   `json:"info"`
	Servers    []Server `json:"servers"`
	Paths      object   `json:"paths"`
	Components object   `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

const (
	swagger2Definitions = "#/definitions/"
	openAPI3Schemas     = "#/components/schemas/"
)

// ServeOpenAPI3Spec serves the API description as OpenAPI 3.0
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read API description")
	}

	var swagger2 object
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse API description")
	}

	spec := OpenAPI3Spec{
		OpenAPI: "3.0.3",
		Info:    asObject(swagger2["info"]),
		Servers: []Server{{
			URL:         "http://" + docs.SwaggerInfo.Host + docs.SwaggerInfo.BasePath,
			Description: "Local Development",
		}},
		Paths: convertPaths(asObject(swagger2["paths"])),
	}
	if definitions := asObject(swagger2["definitions"]); len(definitions) > 0 {
		spec.Components = object{"schemas": rewriteRefs(definitions)}
	}

	return c.JSON(http.StatusOK, spec)
}

func convertPaths(paths object) object {
	out := make(object, len(paths))
	for path, item := range paths {
		operations := make(object)
		for method, op := range asObject(item) {
			operations[method] = convertOperation(asObject(op))
		}
		out[path] = operations
	}
	return out
}

// convertOperation moves the body parameter into requestBody, wraps parameter
// types in a schema and gives every response schema a JSON media type.
func convertOperation(op object) object {
	out := make(object, len(op))
	for key, value := range op {
		switch key {
		case "parameters", "responses", "consumes", "produces":
		default:
			out[key] = value
		}
	}

	var params []interface{}
	for _, p := range asSlice(op["parameters"]) {
		param := asObject(p)
		if param["in"] == "body" {
			out["requestBody"] = convertBody(param)
			continue
		}
		params = append(params, convertParameter(param))
	}
	if len(params) > 0 {
		out["parameters"] = params
	}

	responses := make(object)
	for status, r := range asObject(op["responses"]) {
		responses[status] = convertResponse(asObject(r))
	}
	out["responses"] = responses
	return out
}

func convertParameter(param object) object {
	out := object{}
	schema := object{}
	for key, value := range param {
		switch key {
		case "name", "in", "description", "required":
			out[key] = value
		case "type", "format", "enum", "default", "minimum", "maximum", "items":
			schema[key] = rewriteRefs(value)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

func convertBody(param object) object {
	body := object{"content": jsonContent(param["schema"])}
	for _, key := range []string{"description", "required"} {
		if value, ok := param[key]; ok {
			body[key] = value
		}
	}
	return body
}

func convertResponse(response object) object {
	out := object{"description": response["description"]}
	if schema, ok := response["schema"]; ok {
		out["content"] = jsonContent(schema)
	}
	return out
}

func jsonContent(schema interface{}) object {
	return object{"application/json": object{"schema": rewriteRefs(schema)}}
}

// rewriteRefs points every $ref at components/schemas
func rewriteRefs(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(object, len(v))
		for key, item := range v {
			if ref, ok := item.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, swagger2Definitions, openAPI3Schemas, 1)
				continue
			}
			out[key] = rewriteRefs(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return value
	}
}

func asObject(value interface{}) object {
	o, _ := value.(map[string]interface{})
	return o
}

func asSlice(value interface{}) []interface{} {
	s, _ := value.([]interface{})
	return s
}
