// Command bootstrap_admin seeds the first administrator account so a fresh
// deployment has someone who can approve everyone else.
package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lifewithchrist/community/internal/constants"
	internaldb "lifewithchrist/community/internal/db"
	models "lifewithchrist/community/internal/models/gorm"
)

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	name := flag.String("name", "Administrator", "admin full name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: bootstrap_admin -email <email> -password <password> [-name <name>]")
	}

	db, err := gorm.Open(postgres.Open(internaldb.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		cred := models.Credential{
			Email:        *email,
			PasswordHash: string(hash),
			FullName:     *name,
		}
		if err := tx.Create(&cred).Error; err != nil {
			return fmt.Errorf("create credential: %w", err)
		}

		profile := models.User{
			ID:       cred.ID,
			Email:    *email,
			FullName: *name,
			Role:     constants.RoleAdmin,
			Status:   constants.StatusApproved,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	fmt.Println("Admin account created:", *email)
}
