// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "https://opensource.org/licenses/Apache-2.0"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/posts": {
            "get": {
                "description": "Returns a page of posts bounded by an exclusive id cursor",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "integer", "description": "Only posts with id less than this value", "name": "where__id_less_than", "in": "query"},
                    {"type": "integer", "description": "Only posts with id greater than this value", "name": "where__id_more_than", "in": "query"},
                    {"enum": ["ASC", "DESC"], "type": "string", "description": "Sort direction on createdAt", "name": "order__createdAt", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "take", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pagination.CursorResult-domain_Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create a post",
                "parameters": [
                    {"description": "Post to create", "name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.NewPost"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/posts/random": {
            "post": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Generate random posts",
                "parameters": [
                    {"type": "string", "description": "Author of the generated posts", "name": "author", "in": "query"},
                    {"type": "integer", "description": "Number of posts to generate", "name": "count", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/router.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        },
        "/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get a post",
                "parameters": [
                    {"type": "integer", "description": "Post id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Post"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete a post",
                "parameters": [
                    {"type": "integer", "description": "Post id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Id of the deleted post", "schema": {"type": "integer"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "integer", "description": "Post id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.PostPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperr.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperr.Response"}}
                }
            }
        }
    },
    "definitions": {
        "apperr.Response": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "domain.NewPost": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "domain.Post": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "author": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "likeCount": {"type": "integer"},
                "commentCount": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "domain.PostPatch": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "pagination.Cursor": {
            "type": "object",
            "properties": {
                "after": {"type": "integer"}
            }
        },
        "pagination.CursorResult-domain_Post": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Post"}},
                "cursor": {"$ref": "#/definitions/pagination.Cursor"},
                "count": {"type": "integer"},
                "next": {"type": "string"}
            }
        },
        "router.GenerateResponse": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Posts Feed API",
	Description:      "Lists posts with id-cursor pagination",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
