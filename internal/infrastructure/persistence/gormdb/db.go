package gormdb

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 整个进程共用一个*gorm.DB（内部是连接池），由main注入到各个Repository
// 2. 支持SQLite（默认，文件dd.db）和MySQL两种驱动
// 3. TranslateError把驱动的唯一键冲突翻译成gorm.ErrDuplicatedKey
// 4. 表结构：SQLite数据文件首次创建时执行schema.file，否则AutoMigrate
func NewDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	// 1. 选择驱动；SQLite需要在打开之前判断数据文件是否已存在
	var (
		dialector gorm.Dialector
		freshFile bool
	)
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.Database.DSN())
	case config.DriverSQLite:
		if !cfg.Database.InMemory() {
			_, err := os.Stat(cfg.Database.Path)
			freshFile = errors.Is(err, os.ErrNotExist)
		}
		dialector = sqlite.Open(cfg.Database.SQLiteDSN())
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Database.Driver)
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	if cfg.Database.Driver == config.DriverSQLite {
		// SQLite同一时刻只允许一个写者；内存库的数据随连接存在，连接不能被回收
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("path", cfg.Database.Path).
		Msg("数据库连接成功")

	// 6. 建表
	if err := ensureSchema(db, cfg, freshFile, log); err != nil {
		return nil, fmt.Errorf("初始化表结构失败: %w", err)
	}

	return db, nil
}

// ensureSchema 初始化表结构
// 规则：
// - SQLite文件库且配置了schema.file：只在数据文件新建时执行一次建表脚本，之后表结构归脚本管理
// - 其它情况（MySQL、内存库、没有脚本）：AutoMigrate
func ensureSchema(db *gorm.DB, cfg *config.Config, freshFile bool, log zerolog.Logger) error {
	scriptOwned := cfg.Database.Driver == config.DriverSQLite &&
		!cfg.Database.InMemory() &&
		cfg.Schema.File != ""
	if !scriptOwned {
		return autoMigrate(db)
	}
	if !freshFile {
		return nil
	}

	script, err := os.ReadFile(cfg.Schema.File)
	if err != nil {
		return fmt.Errorf("读取建表脚本失败: %w", err)
	}
	// go-sqlite3的Exec会依次执行脚本里的多条语句
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Exec(string(script)).Error
	}); err != nil {
		return fmt.Errorf("执行建表脚本失败: %w", err)
	}

	log.Info().Str("file", cfg.Schema.File).Msg("已执行建表脚本")
	return nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段和索引，不会删除或修改现有字段
// 2. 唯一索引在这里声明，是"重复创建返回已存在"的唯一依据
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&CustomerModel{},
		&PurchaseOrderModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，domain/book/entity.go是领域实体
// 2. (title, author)联合唯一索引
type BookModel struct {
	ID     int64   `gorm:"primaryKey;autoIncrement"`
	Title  string  `gorm:"column:title;size:255;not null;uniqueIndex:idx_books_title_author"`
	Author string  `gorm:"column:author;size:255;not null;uniqueIndex:idx_books_title_author"`
	Price  float64 `gorm:"column:price;not null"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CustomerModel GORM客户模型
// 列名沿用camelCase（shippingAddress、accountBalance），与已有的dd.db保持一致
type CustomerModel struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	Name            string  `gorm:"column:name;size:255;not null;uniqueIndex:idx_customers_name"`
	ShippingAddress string  `gorm:"column:shippingAddress;size:255;not null"`
	AccountBalance  float64 `gorm:"column:accountBalance;not null;default:0"`
}

// TableName 指定表名
func (CustomerModel) TableName() string {
	return "customers"
}

// PurchaseOrderModel GORM采购单模型
// (customerId, bookId)联合唯一索引
type PurchaseOrderModel struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	CustomerID int64 `gorm:"column:customerId;not null;uniqueIndex:idx_purchase_orders_customer_book"`
	BookID     int64 `gorm:"column:bookId;not null;uniqueIndex:idx_purchase_orders_customer_book;index"`
	Shipped    bool  `gorm:"column:shipped;not null;default:false"`
}

// TableName 指定表名
func (PurchaseOrderModel) TableName() string {
	return "PurchaseOrders"
}
