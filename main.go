package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sgi-panel/config"
	"sgi-panel/database"
	"sgi-panel/logger"
	"sgi-panel/util/common"
	"sgi-panel/web"
	"sgi-panel/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func initEverything() error {
	// .env and sgi.toml are both optional
	_ = godotenv.Load()
	if err := config.LoadFile("sgi.toml"); err != nil {
		return err
	}

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		return common.NewErrorf("unknown log level: %s", config.GetLogLevel())
	}

	if config.GetStoreKind() == config.StoreMemory {
		database.InitStores(string(config.StoreMemory))
		// no reconciler without a structural backend; seed directly
		if _, _, err := service.NewCredentialService().SeedCredential(context.Background()); err != nil {
			return err
		}
		return nil
	}

	if err := database.InitDB(config.GetDBPath()); err != nil {
		return err
	}
	database.InitStores(string(config.StoreSQLite))
	return nil
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	if err := initEverything(); err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

func showSetting() {
	if err := initEverything(); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	users, err := service.NewCredentialService().ListCredentials(context.Background())
	if err != nil {
		fmt.Println("get accounts failed:", err)
		return
	}
	fmt.Println("panel port:", config.GetPort())
	fmt.Println("accounts:")
	for _, u := range users {
		fmt.Printf("  %s (%s, %s)\n", u.Username, u.Role, u.Status)
	}
}

func resetAdminPassword(password string) {
	if err := initEverything(); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	err := service.NewCredentialService().ResetMasterPassword(context.Background(), password)
	if err != nil {
		fmt.Println("reset master password failed:", err)
		return
	}
	fmt.Println("master password updated")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "sgi-panel",
		Short: "SGI business management panel",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the web panel",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var show bool
	var newPassword string
	settingCmd := &cobra.Command{
		Use:   "setting",
		Short: "Inspect or repair panel settings",
		Run: func(cmd *cobra.Command, args []string) {
			if newPassword != "" {
				resetAdminPassword(newPassword)
				return
			}
			if show {
				showSetting()
				return
			}
			_ = cmd.Help()
		},
	}
	settingCmd.Flags().BoolVar(&show, "show", false, "show port and accounts")
	settingCmd.Flags().StringVar(&newPassword, "reset-admin-password", "", "set a new master account password")

	rootCmd.AddCommand(runCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
