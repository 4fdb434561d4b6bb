// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mercadocesar/storefront/internal/config"
	"github.com/mercadocesar/storefront/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Produto{},
		&models.Armazem{},
		&models.Estoque{},
		&models.Carrinho{},
		&models.ItemCarrinho{},
		&models.Cartao{},
		&models.Loja{},
		&models.Pedido{},
		&models.ItemPedido{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// A user may have at most one active cart. Get-or-create query logic
		// alone leaves a corruption window under concurrent requests, so the
		// invariant is also enforced at the storage boundary.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_carrinho_ativo_por_user ON carrinhos(user_id) WHERE ativo AND deleted_at IS NULL",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_produtos_categoria ON produtos(categoria)",
		"CREATE INDEX IF NOT EXISTS idx_produtos_created_at ON produtos(created_at DESC)",

		// Inventory indexes
		"CREATE INDEX IF NOT EXISTS idx_estoques_produto ON estoques(produto_id)",
		"CREATE INDEX IF NOT EXISTS idx_estoques_quantidade ON estoques(quantidade)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_pedidos_user_created ON pedidos(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_pedidos_tipo_created ON pedidos(tipo_entrega, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_itens_pedido_pedido ON itens_pedido(pedido_id)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("user_type = ?", models.UserTypeAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@mercadocesar.com.br",
			UserType: models.UserTypeAdmin,
			Status:   models.UserStatusActive,
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Create the initial catalog if it is empty
	var produtoCount int64
	db.Model(&models.Produto{}).Count(&produtoCount)

	if produtoCount == 0 {
		produtos := []models.Produto{
			{Codigo: "YPE-001", Nome: "Detergente Ypê Clear", Descricao: "Detergente líquido Ypê Clear 500ml", Categoria: "Limpeza", PrecoCusto: 1.80, PrecoVenda: 2.99, UnidadeMedida: "unidade"},
			{Codigo: "PRA-001", Nome: "Arroz Prato Fino", Descricao: "Arroz branco tipo 1 Prato Fino 1kg", Categoria: "Alimentos", PrecoCusto: 4.50, PrecoVenda: 6.99, UnidadeMedida: "unidade"},
			{Codigo: "CAM-001", Nome: "Feijão Preto Camil", Descricao: "Feijão preto Camil 1kg", Categoria: "Alimentos", PrecoCusto: 5.20, PrecoVenda: 7.49, UnidadeMedida: "unidade"},
			{Codigo: "ADR-001", Nome: "Macarrão Adria", Descricao: "Macarrão espaguete Adria 500g", Categoria: "Alimentos", PrecoCusto: 2.40, PrecoVenda: 3.89, UnidadeMedida: "unidade"},
		}

		for i := range produtos {
			if err := db.Create(&produtos[i]).Error; err != nil {
				log.Printf("Warning: Failed to seed produto %s: %v", produtos[i].Codigo, err)
			}
		}

		log.Println("Initial catalog seeded successfully")
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
