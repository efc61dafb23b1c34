package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"moments/config"

	"github.com/go-sql-driver/mysql"
)

// 子表在前，按此顺序清空
var tables = []string{
	"notification",
	"message",
	"comment",
	"post_tag",
	"blog_media",
	"blog_post",
	"tag",
	"category",
	"friendship",
	"user",
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	yes := flag.Bool("yes", false, "skip confirmation")
	flag.Parse()

	cfg := config.LoadConfigFrom(*configPath)
	if cfg.Database.Driver != "" && cfg.Database.Driver != "mysql" {
		log.Fatalf("reset_db only supports mysql, got driver %q", cfg.Database.Driver)
	}

	dsn := mysql.Config{
		User:                 cfg.Database.Username,
		Passwd:               cfg.Database.Password,
		Net:                  "tcp",
		Addr:                 fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port),
		DBName:               cfg.Database.Database,
		Params:               map[string]string{"charset": cfg.Database.Charset},
		ParseTime:            true,
		AllowNativePasswords: true,
	}

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Database connection test failed: %v", err)
	}

	fmt.Printf("Database connected: %s\n", cfg.Database.Database)

	if !*yes {
		fmt.Printf("\nWARNING: This operation will CLEAR ALL DATA in tables %v!\n", tables)
		fmt.Print("Type 'YES' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "YES" {
			fmt.Println("Operation cancelled")
			return
		}
	}

	_, _ = db.Exec("SET FOREIGN_KEY_CHECKS=0")
	defer db.Exec("SET FOREIGN_KEY_CHECKS=1")

	failed := 0
	for _, table := range tables {
		fmt.Printf("Clearing table %s... ", table)
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM `%s`", table)); err != nil {
			failed++
			fmt.Printf("Failed: %v\n", err)
			continue
		}
		// post_tag 为联合主键，没有自增列
		if table != "post_tag" {
			if _, err := db.Exec(fmt.Sprintf("ALTER TABLE `%s` AUTO_INCREMENT = 1", table)); err != nil {
				failed++
				fmt.Printf("Reset auto-increment failed: %v\n", err)
				continue
			}
		}
		fmt.Println("Success")
	}

	if failed > 0 {
		fmt.Printf("\nDatabase reset finished with %d error(s)\n", failed)
		return
	}
	fmt.Println("\nDatabase reset completed, table structure preserved")
}
