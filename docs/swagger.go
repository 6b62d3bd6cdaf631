package docs

import "github.com/swaggo/swag"

// @title           OEE Board API
// @version         1.0
// @description     API for machine registration, production records and OEE dashboards

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration, login and profile settings

// @tag.name Machines
// @tag.description Machine management operations

// @tag.name Production
// @tag.description Shift production record operations

// @tag.name Dashboard
// @tag.description Aggregated OEE metrics and trends

// @tag.name Reports
// @tag.description Filtered reports and CSV export

// @tag.name Invitations
// @tag.description Dashboard access invitations

var instance = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "OEE Board API",
	Description:      "API for machine registration, production records and OEE dashboards",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  "{}",
}

func init() {
	swag.Register(instance.InstanceName(), instance)
}

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return instance
}
