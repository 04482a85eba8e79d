// Package docs holds the OpenAPI description served under /api-docs.
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
        "/api/documentos": {
            "get": {
                "description": "Lists invoices with their photos per category. Uses the legacy database when available and the image share otherwise.",
                "produces": ["application/json"],
                "tags": ["documentos"],
                "summary": "List invoice documents",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Invoice number, any of SS-NNNNNN, SSNNNNNN or SS.NNNNNN",
                        "name": "nota",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Issue date prefix (YYYY-MM-DD)",
                        "name": "data",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Matching documents, newest first",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/model.DocumentDTO"}
                        }
                    }
                }
            }
        },
        "/api/upload": {
            "post": {
                "description": "Stores conference, load and receipt photos for an invoice. Each file is resized and saved under its category directory.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["upload"],
                "summary": "Upload invoice photos",
                "parameters": [
                    {"type": "string", "description": "Invoice number in SS-NNNNNN format", "name": "documentNumber", "in": "formData", "required": true},
                    {"type": "file", "description": "Conference photo", "name": "conferencia", "in": "formData"},
                    {"type": "file", "description": "License plate photo", "name": "placa", "in": "formData"},
                    {"type": "file", "description": "First load photo", "name": "carga1", "in": "formData"},
                    {"type": "file", "description": "Second load photo", "name": "carga2", "in": "formData"},
                    {"type": "file", "description": "Signed receipt photo", "name": "canhoto", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Per-file results", "schema": {"$ref": "#/definitions/model.UploadResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/model.UploadResponse"}},
                    "413": {"description": "Request too large", "schema": {"$ref": "#/definitions/model.UploadResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.UploadResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports the query mode together with image index and cache state",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.UploadResult": {
            "type": "object",
            "properties": {
                "categoria": {"type": "string"},
                "arquivo": {"type": "string"},
                "caminho": {"type": "string"},
                "url": {"type": "string"},
                "status": {"type": "string"},
                "erro": {"type": "string"}
            }
        },
        "model.ImagesByCategoryDTO": {
            "type": "object",
            "properties": {
                "conferencia": {"type": "array", "items": {"type": "string"}},
                "carga": {"type": "array", "items": {"type": "string"}},
                "canhoto": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.DocumentDTO": {
            "type": "object",
            "properties": {
                "documentoFormatado": {"type": "string"},
                "dataFormatada": {"type": "string"},
                "cliente": {"type": "string"},
                "imagensPorCategoria": {"$ref": "#/definitions/model.ImagesByCategoryDTO"}
            }
        },
        "model.UploadResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.UploadResult"}}
            }
        },
        "model.IndexStatsDTO": {
            "type": "object",
            "properties": {
                "entries": {"type": "integer"},
                "builtAt": {"type": "string"},
                "fresh": {"type": "boolean"}
            }
        },
        "model.CacheStatsDTO": {
            "type": "object",
            "properties": {
                "entries": {"type": "integer"}
            }
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "mode": {"type": "string"},
                "index": {"$ref": "#/definitions/model.IndexStatsDTO"},
                "cache": {"$ref": "#/definitions/model.CacheStatsDTO"}
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
	Title:            "Invoice Document Service API",
	Description:      "Lists invoice photos by category and accepts new uploads for the shared image directory.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
