// Package docs registers the OpenAPI document served under /swagger/.
// The spec is maintained by hand; keep it in sync with routes.SetupRoutes.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Authenticate with email and password",
                "responses": {
                    "200": {"description": "user and signed token"},
                    "401": {"description": "invalid credentials"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new account",
                "responses": {
                    "201": {"description": "user and signed token"},
                    "400": {"description": "validation failed"},
                    "409": {"description": "email or username taken"}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Return the authenticated user",
                "responses": {
                    "200": {"description": "current user"},
                    "401": {"description": "missing or invalid token"}
                }
            }
        },
        "/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "List all teams with rosters",
                "responses": {"200": {"description": "teams"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Create a team",
                "responses": {
                    "201": {"description": "created team"},
                    "400": {"description": "validation failed"},
                    "403": {"description": "admin role required"},
                    "409": {"description": "team name taken"}
                }
            }
        },
        "/teams/{teamID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Get one team with roster",
                "parameters": [{"type": "integer", "name": "teamID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "team"},
                    "404": {"description": "team not found"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Update team fields",
                "parameters": [{"type": "integer", "name": "teamID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "updated team"},
                    "400": {"description": "validation failed"},
                    "404": {"description": "team not found"},
                    "409": {"description": "team name taken"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Delete a team",
                "parameters": [
                    {"type": "integer", "name": "teamID", "in": "path", "required": true},
                    {"type": "boolean", "name": "cascade", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "deleted"},
                    "404": {"description": "team not found"},
                    "409": {"description": "team still referenced"}
                }
            }
        },
        "/teams/{teamID}/flag": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Upload the team flag image",
                "parameters": [
                    {"type": "integer", "name": "teamID", "in": "path", "required": true},
                    {"type": "file", "name": "flag", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "team with flag url"},
                    "503": {"description": "flag storage not configured"}
                }
            }
        },
        "/players": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "List all players",
                "responses": {"200": {"description": "players"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Create a player",
                "responses": {
                    "201": {"description": "created player"},
                    "400": {"description": "validation failed"},
                    "404": {"description": "team not found"},
                    "409": {"description": "jersey number taken"}
                }
            }
        },
        "/players/{playerID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Get one player",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "player"},
                    "404": {"description": "player not found"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Update player fields",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "updated player"},
                    "400": {"description": "validation failed"},
                    "404": {"description": "player or team not found"},
                    "409": {"description": "jersey number taken"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Delete a player",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "deleted"},
                    "404": {"description": "player not found"}
                }
            }
        },
        "/players/team/{teamID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "List players of one team",
                "parameters": [{"type": "integer", "name": "teamID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "players"},
                    "404": {"description": "team not found"}
                }
            }
        },
        "/matches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "List all matches",
                "responses": {"200": {"description": "matches"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Schedule a match",
                "responses": {
                    "201": {"description": "created match"},
                    "400": {"description": "validation failed"},
                    "404": {"description": "team not found"}
                }
            }
        },
        "/matches/upcoming": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "List the next scheduled and live matches",
                "responses": {"200": {"description": "matches"}}
            }
        },
        "/matches/{matchID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Get one match",
                "parameters": [{"type": "integer", "name": "matchID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "match"},
                    "404": {"description": "match not found"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Update match fields",
                "parameters": [{"type": "integer", "name": "matchID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "updated match"},
                    "400": {"description": "validation failed"},
                    "404": {"description": "match or team not found"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Delete a match",
                "parameters": [{"type": "integer", "name": "matchID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "deleted"},
                    "404": {"description": "match not found"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness and database connectivity check",
                "responses": {
                    "200": {"description": "ok"},
                    "503": {"description": "database unreachable"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "WorldCup API",
	Description:      "REST API for World Cup teams, players and matches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
