// Package probe registers the sessionprobe swagger document.
package probe

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/probesdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/probesdk.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/probesdk.HealthResponse"}}
                }
            }
        },
        "/debug/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Debug"],
                "summary": "Inspect the caller's session",
                "parameters": [
                    {"type": "string", "description": "Navigation path of the client", "name": "path", "in": "query"},
                    {"type": "string", "description": "Navigation path of the client", "name": "X-Client-Path", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inspect.Result"}}
                }
            }
        },
        "/v1/profiles/{profile}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Storage"],
                "summary": "Clear a profile",
                "parameters": [
                    {"type": "string", "description": "Profile name", "name": "profile", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/probesdk.ClearProfileResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/profiles/{profile}/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Inspect a stored session",
                "parameters": [
                    {"type": "string", "description": "Profile name", "name": "profile", "in": "path", "required": true},
                    {"type": "string", "description": "Navigation path of the client", "name": "path", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inspect.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/profiles/{profile}/items": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Storage"],
                "summary": "List client storage items",
                "parameters": [
                    {"type": "string", "description": "Profile name", "name": "profile", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/probesdk.ListItemsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/profiles/{profile}/items/{key}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Storage"],
                "summary": "Get a client storage item",
                "parameters": [
                    {"type": "string", "description": "Profile name", "name": "profile", "in": "path", "required": true},
                    {"type": "string", "description": "Item key", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/probesdk.ItemResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["text/plain"],
                "tags": ["Storage"],
                "summary": "Set a client storage item",
                "parameters": [
                    {"type": "string", "description": "Profile name", "name": "profile", "in": "path", "required": true},
                    {"type": "string", "description": "Item key", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Storage"],
                "summary": "Remove a client storage item",
                "parameters": [
                    {"type": "string", "description": "Profile name", "name": "profile", "in": "path", "required": true},
                    {"type": "string", "description": "Item key", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "httpx.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "inspect.TokenInfo": {
            "type": "object",
            "properties": {
                "fingerprint": {"type": "string"},
                "jwt": {"type": "boolean"},
                "subject": {"type": "string"},
                "role": {"type": "string"},
                "scopes": {"type": "array", "items": {"type": "string"}},
                "expires_at": {"type": "string"},
                "expired": {"type": "boolean"}
            }
        },
        "inspect.Result": {
            "type": "object",
            "properties": {
                "hasToken": {"type": "boolean"},
                "hasUser": {"type": "boolean"},
                "user": {"type": "object", "additionalProperties": true},
                "isOnAdminRoute": {"type": "boolean"},
                "isAdmin": {"type": "boolean"},
                "userError": {"type": "string"},
                "token": {"$ref": "#/definitions/inspect.TokenInfo"}
            }
        },
        "probesdk.ItemResponse": {
            "type": "object",
            "properties": {
                "profile": {"type": "string"},
                "key": {"type": "string"},
                "value": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "probesdk.ListItemsResponse": {
            "type": "object",
            "properties": {
                "profile": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/probesdk.ItemResponse"}}
            }
        },
        "probesdk.ClearProfileResponse": {
            "type": "object",
            "properties": {
                "profile": {"type": "string"},
                "removed": {"type": "integer"}
            }
        },
        "probesdk.HealthChecks": {
            "type": "object",
            "properties": {
                "storage": {"type": "string"}
            }
        },
        "probesdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/probesdk.HealthChecks"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "sessionprobe API",
	Description:      "Inspects persisted client-side session state (auth token, user record, admin route).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
