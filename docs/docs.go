// Package docs holds the Swagger specification served at /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/images/generate": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Tries providers in priority order and returns image URLs or data URIs from the first that succeeds.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Generate images from a prompt",
                "parameters": [
                    {
                        "description": "Generation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/imagegen.Request"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/imagegen.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/providers": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "List image providers",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.ProviderInfo"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.ProviderInfo": {
            "type": "object",
            "properties": {
                "default": {"type": "boolean"},
                "enabled": {"type": "boolean"},
                "models": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"}
            }
        },
        "imagegen.Request": {
            "type": "object",
            "properties": {
                "aspectRatio": {"type": "string"},
                "image": {"type": "string"},
                "model": {"type": "string"},
                "numImages": {"type": "integer"},
                "prompt": {"type": "string"}
            }
        },
        "imagegen.Result": {
            "type": "object",
            "properties": {
                "images": {"type": "array", "items": {"type": "string"}},
                "model": {"type": "string"},
                "provider": {"type": "string"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "imagerelay API",
	Description:      "Prompt-to-image relay with provider fallback.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
