// @title           Job Portal API
// @version         1.0
// @description     API портала вакансий: соискатели, компании, администрирование (документация Swagger).
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"jobportal_backend/internal/app"

	_ "jobportal_backend/docs"
)

func main() {
	app.Run()
}
