package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "IEVE API",
        "description": "Student tardiness and absence tracking backend",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student enrollment"},
        {"name": "Courses", "description": "Course catalogue"},
        {"name": "Absences", "description": "Tardiness and absence records"},
        {"name": "Users", "description": "Dashboard accounts"},
        {"name": "Reports", "description": "Aggregated absence reports"},
        {"name": "System", "description": "Liveness"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthBody"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "course_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Enroll a student and provision its account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Student"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Student or user already exists", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students/{id}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "string"}
            ],
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Replace student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Student"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/MessageBody"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Course"}}}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Course"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Course"}},
                    "409": {"description": "Course already exists", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/courses/{id}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "string"}
            ],
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Course"}},
                    "404": {"description": "Course not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Replace course",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Course"}}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course",
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/absences": {
            "get": {
                "tags": ["Absences"],
                "summary": "List absences",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Absence"}}}
                }
            },
            "post": {
                "tags": ["Absences"],
                "summary": "Record absence",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Absence"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Absence"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/absences/student/{studentId}": {
            "get": {
                "tags": ["Absences"],
                "summary": "List absences of a student",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Absence"}}}
                }
            }
        },
        "/absences/{id}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "string"}
            ],
            "get": {
                "tags": ["Absences"],
                "summary": "Get absence",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Absence"}},
                    "404": {"description": "Absence not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "put": {
                "tags": ["Absences"],
                "summary": "Replace absence",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Absence"}}
                }
            },
            "delete": {
                "tags": ["Absences"],
                "summary": "Delete absence",
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/absences/{id}/comments": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "string"}
            ],
            "get": {
                "tags": ["Absences"],
                "summary": "List the comment thread",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AbsenceComment"}}}
                }
            },
            "post": {
                "tags": ["Absences"],
                "summary": "Append a labelled comment",
                "parameters": [
                    {"name": "X-User-Role", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppendCommentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Absence"}},
                    "404": {"description": "Absence not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/User"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}},
                    "409": {"description": "User already exists", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/users/{username}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user by username",
                "parameters": [
                    {"name": "username", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/reports/absences": {
            "get": {
                "tags": ["Reports"],
                "summary": "Filtered absence report",
                "parameters": [
                    {"name": "date_from", "in": "query", "type": "string"},
                    {"name": "date_to", "in": "query", "type": "string"},
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "student_id", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "integer"},
                    {"name": "situation", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid type filter", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/reports/absences/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export filtered absences",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported export format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/reports/courses": {
            "get": {
                "tags": ["Reports"],
                "summary": "Absence breakdown per course",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reports/students/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Absence breakdown of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/reports/dashboard": {
            "get": {
                "tags": ["Reports"],
                "summary": "Dashboard summary",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "course_id": {"type": "string"},
                "enrollment_date": {"type": "string", "format": "date"}
            },
            "required": ["id", "name", "email", "course_id", "enrollment_date"]
        },
        "Course": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "teacher": {"type": "string"},
                "schedule": {"type": "string"}
            },
            "required": ["id", "name", "teacher", "schedule"]
        },
        "Absence": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_id": {"type": "string"},
                "course_id": {"type": "string"},
                "type": {"type": "integer", "enum": [1, 2, 3]},
                "category": {"type": "string"},
                "situation": {"type": "string"},
                "sanction": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "comments": {"type": "string"}
            }
        },
        "AbsenceComment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "absence_id": {"type": "string"},
                "author_role": {"type": "string"},
                "text": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "AppendCommentRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "author_role": {"type": "string", "enum": ["student", "teacher", "admin"]}
            },
            "required": ["text"]
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "teacher", "admin"]}
            },
            "required": ["id", "username", "role"]
        },
        "HealthBody": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "MessageBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
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
