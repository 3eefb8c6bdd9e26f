package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lead Capture Form API",
        "description": "Multi-step form submissions appended to a Google Sheets spreadsheet",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Submissions", "description": "Form submission intake"},
        {"name": "Operations", "description": "Audit listing and export"},
        {"name": "System", "description": "Health and metrics"}
    ],
    "paths": {
        "/api/submit-form": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Submit a completed lead capture form",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SubmitFormRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Submission accepted",
                        "schema": {"$ref": "#/definitions/Envelope"}
                    },
                    "400": {
                        "description": "Invalid form data",
                        "schema": {"$ref": "#/definitions/Envelope"}
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {"$ref": "#/definitions/Envelope"}
                    },
                    "429": {
                        "description": "Too many requests",
                        "schema": {"$ref": "#/definitions/Envelope"}
                    }
                }
            }
        },
        "/api/submissions": {
            "get": {
                "tags": ["Operations"],
                "summary": "List audited submissions",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["delivered", "failed", "skipped"]},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {
                        "description": "Audited submissions",
                        "schema": {"$ref": "#/definitions/Envelope"}
                    },
                    "503": {
                        "description": "Audit store not configured",
                        "schema": {"$ref": "#/definitions/Envelope"}
                    }
                }
            }
        },
        "/api/submissions/export": {
            "get": {
                "tags": ["Operations"],
                "summary": "Export audited submissions as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "CSV attachment"},
                    "503": {
                        "description": "Audit store not configured",
                        "schema": {"$ref": "#/definitions/Envelope"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "Metrics exposition"}}
            }
        }
    },
    "definitions": {
        "SubmitFormRequest": {
            "type": "object",
            "required": ["name", "contactMethods", "socialPlatforms", "socialMediaHandle"],
            "properties": {
                "name": {"type": "string"},
                "contactMethods": {"type": "array", "items": {"type": "string"}},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "socialPlatforms": {"type": "array", "items": {"type": "string"}},
                "socialMediaHandle": {"type": "string"},
                "address": {"type": "string"},
                "turnstileToken": {"type": "string"}
            }
        },
        "SubmissionItem": {
            "type": "object",
            "properties": {
                "submissionId": {"type": "string"},
                "name": {"type": "string"},
                "contactMethods": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "socialPlatforms": {"type": "string"},
                "socialMediaHandle": {"type": "string"},
                "address": {"type": "string"},
                "status": {"type": "string"},
                "attempts": {"type": "integer"},
                "lastError": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"}
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
