package main

import (
	"errors"
	"log"

	"inkwell/config"
	"inkwell/models"
	"inkwell/repository"
	"inkwell/routes"
	"inkwell/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db := config.InitDatabase(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.PageView{},
	)

	if err := ensureAdminUser(cfg); err != nil {
		utils.Sugar.Fatalf("admin bootstrap failed: %v", err)
	}

	router := routes.SetupRouter(db)

	utils.Sugar.Infof("listening on :%s", cfg.AppPort)
	if err := utils.Serve(":"+cfg.AppPort, router); err != nil {
		utils.Sugar.Fatalf("server error: %v", err)
	}
}

// ensureAdminUser creates the bootstrap admin account on first boot. Skipped
// when the account exists or no password is configured.
func ensureAdminUser(cfg config.AppConfig) error {
	users := repository.NewUserStore(config.DB())

	_, err := users.GetByUsername(cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if cfg.AdminPassword == "" {
		utils.Sugar.Warnf("admin user %q missing and ADMIN_PASSWORD unset, skipping bootstrap", cfg.AdminUsername)
		return nil
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
	}
	if err := users.Create(&admin); err != nil {
		return err
	}
	utils.Sugar.Infof("created bootstrap admin user %q", cfg.AdminUsername)
	return nil
}
