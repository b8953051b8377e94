package main

import (
	"github.com/Geeky-har/My-Blog/config"
	"github.com/Geeky-har/My-Blog/models"
	"github.com/Geeky-har/My-Blog/routes"
	"github.com/Geeky-har/My-Blog/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	utils.InitRedis(cfg)

	db := config.InitDatabase(&models.Post{}, &models.Contact{}, &models.PageView{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
