// Package swagger is generated by swaggo/swag from the handler annotations.
package swagger

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
		"/api/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.TokenResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.LoginUserRequest"
						}
					}
				]
			}
		},
		"/api/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Get current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.UserResponse"
										}
									}
								}
							]
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/users": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Create a new user",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.UserResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.CreateUserRequest"
						}
					}
				]
			}
		},
		"/api/users/{id}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Get user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.UserResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/fees/calculate": {
			"post": {
				"tags": [
					"fees"
				],
				"summary": "Quote fees for an order",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.FeeQuoteResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.FeeQuoteRequest"
						}
					}
				]
			}
		},
		"/api/exemptions/check": {
			"get": {
				"tags": [
					"fees"
				],
				"summary": "Check sales tax exemption",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.ExemptionDecision"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Buyer user ID",
						"name": "buyer_id",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Seller state code",
						"name": "state",
						"in": "query"
					},
					{
						"type": "boolean",
						"description": "Charitable use (default true)",
						"name": "charitable",
						"in": "query"
					},
					{
						"type": "boolean",
						"description": "Purchase is a service",
						"name": "service",
						"in": "query"
					}
				]
			}
		},
		"/api/tax-rules": {
			"get": {
				"tags": [
					"tax"
				],
				"summary": "List state tax rules",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/response.Page"
										}
									}
								}
							]
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Page number (default 1)",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Items per page (default 20)",
						"name": "limit",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"tax"
				],
				"summary": "Create a state tax rule",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.TaxRuleResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.StateTaxRuleRequest"
						}
					}
				]
			}
		},
		"/api/tax-rules/{state}": {
			"get": {
				"tags": [
					"tax"
				],
				"summary": "Get a state tax rule",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.TaxRuleResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Two letter state code",
						"name": "state",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"tax"
				],
				"summary": "Update a state tax rule",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.TaxRuleResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Two letter state code",
						"name": "state",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.StateTaxRuleRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"tax"
				],
				"summary": "Delete a state tax rule",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Two letter state code",
						"name": "state",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/exemption-certificates": {
			"post": {
				"tags": [
					"tax"
				],
				"summary": "Submit an exemption certificate",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "object"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.SubmitCertificateRequest"
						}
					}
				]
			}
		},
		"/api/exemption-certificates/{id}/status": {
			"put": {
				"tags": [
					"tax"
				],
				"summary": "Approve or reject a certificate",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "object"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Certificate ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.ReviewCertificateRequest"
						}
					}
				]
			}
		},
		"/api/organizations": {
			"post": {
				"tags": [
					"organizations"
				],
				"summary": "Register an organization",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "object"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.CreateOrganizationRequest"
						}
					}
				]
			}
		},
		"/api/organizations/{id}": {
			"get": {
				"tags": [
					"organizations"
				],
				"summary": "Get an organization",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "object"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Organization ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/organizations/{id}/compliance-check": {
			"post": {
				"tags": [
					"compliance"
				],
				"summary": "Re-evaluate an organization's filing compliance",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/model.ComplianceRecord"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Organization ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/compliance/evaluate": {
			"post": {
				"tags": [
					"compliance"
				],
				"summary": "Evaluate filing compliance",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/model.ComplianceRecord"
										}
									}
								}
							]
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.ComplianceEvaluateRequest"
						}
					}
				]
			}
		},
		"/api/listings": {
			"post": {
				"tags": [
					"organizations"
				],
				"summary": "Create a listing",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "object"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.CreateListingRequest"
						}
					}
				]
			}
		},
		"/api/barter/transactions": {
			"post": {
				"tags": [
					"barter"
				],
				"summary": "Propose a barter",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "object"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.CreateBarterRequest"
						}
					}
				]
			}
		},
		"/api/barter/transactions/{id}/can-settle": {
			"get": {
				"tags": [
					"barter"
				],
				"summary": "Check whether a barter can settle",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "object"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Transaction ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/barter/transactions/{id}/settle": {
			"post": {
				"tags": [
					"barter"
				],
				"summary": "Settle a barter",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.SettlementResult"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Transaction ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/impact/volunteer": {
			"post": {
				"tags": [
					"impact"
				],
				"summary": "Award points for an approved timesheet",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.AwardResult"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.VolunteerActivity"
						}
					}
				]
			}
		},
		"/api/impact/donation": {
			"post": {
				"tags": [
					"impact"
				],
				"summary": "Award points for a donation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.AwardResult"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.DonationActivity"
						}
					}
				]
			}
		},
		"/api/impact/follow": {
			"post": {
				"tags": [
					"impact"
				],
				"summary": "Award points for following an organization",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/service.AwardResult"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "payload",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.FollowActivity"
						}
					}
				]
			}
		},
		"/api/impact/{source_type}/{source_id}": {
			"delete": {
				"tags": [
					"impact"
				],
				"summary": "Remove points for a source event",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "object"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "volunteer, donation, follow or bonus",
						"name": "source_type",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Source event ID",
						"name": "source_id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/impact/users/{id}/score": {
			"get": {
				"tags": [
					"impact"
				],
				"summary": "Get a user's impact score",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/model.ScoreSummary"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "monthly, quarterly or annual (default monthly)",
						"name": "period",
						"in": "query"
					}
				]
			}
		},
		"/api/impact/leaderboard": {
			"get": {
				"tags": [
					"impact"
				],
				"summary": "Top users by points in a window",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/model.LeaderboardEntry"
											}
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "monthly, quarterly or annual (default monthly)",
						"name": "period",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Number of entries (default 10)",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/api/audit-logs": {
			"get": {
				"tags": [
					"audit"
				],
				"summary": "Get audit logs",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/response.Page"
										}
									}
								}
							]
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Page number (default 1)",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Items per page (default 20)",
						"name": "limit",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Filter by action",
						"name": "action",
						"in": "query"
					}
				]
			}
		}
	},
	"definitions": {
		"response.Response": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"status_code": {
					"type": "integer"
				},
				"data": {
					"type": "object"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"response.Page": {
			"type": "object",
			"properties": {
				"items": {
					"type": "object"
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"total_pages": {
					"type": "integer"
				}
			}
		},
		"service.LoginUserRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"service.TokenResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"expires_at": {
					"type": "string"
				}
			}
		},
		"service.CreateUserRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"admin",
						"staff",
						"member"
					]
				},
				"organization_id": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"email",
				"password",
				"role"
			]
		},
		"service.UserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"organization_id": {
					"type": "string"
				},
				"points_balance": {
					"type": "integer"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"service.FeeQuoteRequest": {
			"type": "object",
			"properties": {
				"amount": {
					"type": "string"
				},
				"payment_method": {
					"type": "string",
					"enum": [
						"card",
						"points"
					]
				},
				"seller_state": {
					"type": "string"
				},
				"listing_id": {
					"type": "string"
				},
				"accepts_points": {
					"type": "boolean"
				},
				"buyer_id": {
					"type": "string"
				},
				"is_charitable_use": {
					"type": "boolean"
				}
			},
			"required": [
				"amount",
				"payment_method"
			]
		},
		"service.FeeQuoteResponse": {
			"type": "object",
			"properties": {
				"platform_fee": {
					"type": "string"
				},
				"platform_fee_pct": {
					"type": "string"
				},
				"transaction_fee": {
					"type": "string"
				},
				"transaction_fee_pct": {
					"type": "string"
				},
				"sales_tax": {
					"type": "string"
				},
				"sales_tax_rate": {
					"type": "string"
				},
				"total_buyer_pays": {
					"type": "string"
				},
				"seller_earnings": {
					"type": "string"
				},
				"is_exempt": {
					"type": "boolean"
				}
			}
		},
		"service.ExemptionDecision": {
			"type": "object",
			"properties": {
				"is_exempt": {
					"type": "boolean"
				},
				"reason": {
					"type": "string"
				},
				"state_code": {
					"type": "string"
				},
				"state_status": {
					"type": "string"
				},
				"goods_vs_services_policy": {
					"type": "string"
				},
				"requires_certificate": {
					"type": "boolean"
				},
				"is_service": {
					"type": "boolean"
				}
			}
		},
		"service.StateTaxRuleRequest": {
			"type": "object",
			"properties": {
				"state_code": {
					"type": "string"
				},
				"state_name": {
					"type": "string"
				},
				"base_rate": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"exempt",
						"exempt_limited",
						"non_exempt",
						"refund_based",
						"no_state_tax"
					]
				},
				"goods_vs_services_policy": {
					"type": "string",
					"enum": [
						"goods_only",
						"services_only",
						"goods_and_services"
					]
				},
				"requires_certificate": {
					"type": "boolean"
				},
				"notes": {
					"type": "string"
				}
			},
			"required": [
				"state_code",
				"base_rate",
				"status"
			]
		},
		"service.TaxRuleResponse": {
			"type": "object",
			"properties": {
				"state_code": {
					"type": "string"
				},
				"state_name": {
					"type": "string"
				},
				"base_rate": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"goods_vs_services_policy": {
					"type": "string"
				},
				"requires_certificate": {
					"type": "boolean"
				},
				"notes": {
					"type": "string"
				},
				"updated_at": {
					"type": "string"
				}
			}
		},
		"service.SubmitCertificateRequest": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"state_code": {
					"type": "string"
				},
				"certificate_no": {
					"type": "string"
				},
				"expiry_date": {
					"type": "string"
				}
			},
			"required": [
				"user_id",
				"state_code",
				"certificate_no"
			]
		},
		"service.ReviewCertificateRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"approved",
						"rejected"
					]
				}
			},
			"required": [
				"status"
			]
		},
		"service.CreateOrganizationRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"ein": {
					"type": "string"
				},
				"is_nonprofit": {
					"type": "boolean"
				},
				"user_id": {
					"type": "string"
				},
				"tax_period": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"service.CreateListingRequest": {
			"type": "object",
			"properties": {
				"organization_id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"price": {
					"type": "string"
				},
				"points_value": {
					"type": "integer"
				},
				"accepts_points": {
					"type": "boolean"
				},
				"is_service": {
					"type": "boolean"
				}
			},
			"required": [
				"organization_id",
				"title"
			]
		},
		"service.ComplianceEvaluateRequest": {
			"type": "object",
			"properties": {
				"tax_period": {
					"type": "string"
				},
				"identifier": {
					"type": "string"
				},
				"threshold_months": {
					"type": "integer"
				}
			}
		},
		"model.ComplianceRecord": {
			"type": "object",
			"properties": {
				"identifier": {
					"type": "string"
				},
				"tax_period": {
					"type": "string"
				},
				"normalized_period": {
					"type": "string"
				},
				"period_end_date": {
					"type": "string"
				},
				"checked_at": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"months_since_period": {
					"type": "integer"
				},
				"threshold_months": {
					"type": "integer"
				},
				"is_expired": {
					"type": "boolean"
				},
				"should_lock": {
					"type": "boolean"
				}
			}
		},
		"service.CreateBarterRequest": {
			"type": "object",
			"properties": {
				"requesting_org_id": {
					"type": "string"
				},
				"responding_org_id": {
					"type": "string"
				},
				"requested_listing_id": {
					"type": "string"
				},
				"offered_listing_id": {
					"type": "string"
				}
			},
			"required": [
				"requesting_org_id",
				"responding_org_id",
				"requested_listing_id",
				"offered_listing_id"
			]
		},
		"service.SettlementResult": {
			"type": "object",
			"properties": {
				"transaction_id": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"points_delta": {
					"type": "integer"
				},
				"settlement": {
					"type": "object"
				}
			}
		},
		"service.VolunteerActivity": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"timesheet_id": {
					"type": "string"
				},
				"hours": {
					"type": "number"
				},
				"critical": {
					"type": "boolean"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"date": {
					"type": "string"
				}
			},
			"required": [
				"user_id",
				"timesheet_id",
				"hours",
				"date"
			]
		},
		"service.DonationActivity": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"donation_id": {
					"type": "string"
				},
				"amount": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"date": {
					"type": "string"
				}
			},
			"required": [
				"user_id",
				"donation_id",
				"status",
				"date"
			]
		},
		"service.FollowActivity": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"follow_id": {
					"type": "string"
				},
				"date": {
					"type": "string"
				}
			},
			"required": [
				"user_id",
				"follow_id",
				"date"
			]
		},
		"service.AwardResult": {
			"type": "object",
			"properties": {
				"point": {
					"type": "object"
				},
				"bonus": {
					"type": "object"
				},
				"duplicate": {
					"type": "boolean"
				},
				"skipped": {
					"type": "boolean"
				},
				"badge_tier": {
					"type": "integer"
				},
				"tier_changed": {
					"type": "boolean"
				}
			}
		},
		"model.ScoreSummary": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"period": {
					"type": "string"
				},
				"window_days": {
					"type": "integer"
				},
				"window_start": {
					"type": "string"
				},
				"window_end": {
					"type": "string"
				},
				"points_by_source": {
					"type": "object"
				},
				"total_points": {
					"type": "number"
				},
				"normalized_points": {
					"type": "number"
				},
				"impact_score": {
					"type": "number"
				},
				"badge_tier": {
					"type": "integer"
				}
			}
		},
		"model.LeaderboardEntry": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"total_points": {
					"type": "number"
				},
				"badge_tier": {
					"type": "integer"
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
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Impact Marketplace Rules API",
	Description:      "Fees, sales tax exemption, barter settlement, filing compliance and impact scoring for a nonprofit marketplace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
