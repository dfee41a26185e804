// @title           wellYou Recruitment API
// @version         1.0
// @description     API конвейера найма: вакансии, кандидаты, заявки, интервью, рекомендации и отчеты.
// @contact.name    wellYou Recruitment
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import (
	_ "github.com/ayanadankhan/wellYou-be-new-sub001/docs"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/app"
)

func main() {
	app.Run()
}
