// Package docs registers the OpenAPI document served under /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/api/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register a new user", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/auth/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Logout", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/movies": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "List movies", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Page number (1-based)", "name": "page", "in": "query"},
                    {"type": "string", "description": "Title substring", "name": "keyword", "in": "query"},
                    {"type": "string", "description": "Comma-separated genre ids", "name": "genres", "in": "query"},
                    {"type": "string", "description": "Director id", "name": "director", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "Create a movie", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/api/movies/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "Get a movie", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Movie id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "Update a movie", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Movie id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "Delete a movie", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Movie id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}
        },
        "/api/movies/{id}/tmdb": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["movies"], "summary": "Get a movie with live metadata", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Movie id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}
        },
        "/api/directors": {"get": {"security": [{"BearerAuth": []}], "tags": ["directors"], "summary": "List directors", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/directors/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["directors"], "summary": "Get a director with their movies",
            "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}},
        "/api/actors": {"get": {"security": [{"BearerAuth": []}], "tags": ["actors"], "summary": "List actors", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/actors/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["actors"], "summary": "Get an actor with their movies",
            "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}},
        "/api/genres": {"get": {"security": [{"BearerAuth": []}], "tags": ["genres"], "summary": "List genres", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/genres/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["genres"], "summary": "Get a genre with its movies",
            "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}},
        "/api/users": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users",
            "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/api/users/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete a user",
            "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness check",
            "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Movie Catalog API",
	Description:      "Browse, search and curate a movie catalog enriched with live TMDB metadata.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
