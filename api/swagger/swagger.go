package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "senehorario API",
        "description": "Course planning backend: catalog search, section selection with lab coupling, and schedule alternatives",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Sessions", "description": "Anonymous planner sessions"},
        {"name": "Courses", "description": "Catalog search and sections"},
        {"name": "Planning", "description": "Section selection and schedule alternatives"},
        {"name": "Plans", "description": "Named planning snapshots"}
    ],
    "paths": {
        "/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Issue a planner session token",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "Search courses by free text",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/courses/{code}/sections": {
            "get": {
                "tags": ["Courses"],
                "summary": "List sections for a course code",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/planning": {
            "get": {
                "tags": ["Planning"],
                "summary": "Current planning view",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "delete": {
                "tags": ["Planning"],
                "summary": "Reset the planning state",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/planning/toggle": {
            "post": {
                "tags": ["Planning"],
                "summary": "Toggle a section selection",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/planning/schedules/next": {
            "post": {
                "tags": ["Planning"],
                "summary": "Show the next schedule alternative",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/planning/schedules/prev": {
            "post": {
                "tags": ["Planning"],
                "summary": "Show the previous schedule alternative",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/planning/events": {
            "get": {
                "tags": ["Planning"],
                "summary": "Render configuration for the displayed alternative",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/planning/export": {
            "get": {
                "tags": ["Planning"],
                "summary": "Download the displayed schedule",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["ics", "pdf", "csv"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/plans": {
            "get": {
                "tags": ["Plans"],
                "summary": "List saved plans",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Plans"],
                "summary": "Save the current planning state",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/plans/{id}/load": {
            "post": {
                "tags": ["Plans"],
                "summary": "Load a saved plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/plans/{id}": {
            "delete": {
                "tags": ["Plans"],
                "summary": "Delete a saved plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
