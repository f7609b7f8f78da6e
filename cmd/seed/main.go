package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/repository"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/seed"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var driverID int64
	var csvPath string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机司机, 2: 为司机插入随机任务, 3: 从 CSV 导入任务)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&driverID, "driver-id", 0, "任务所属的司机 ID，为 0 时分配给所有司机")
	flag.StringVar(&csvPath, "csv", "./internal/seed/data/jobs.csv", "导入任务所用的 CSV 文件")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的司机数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			driver, err := utils.GenerateRandomDriver(cfg.Seed.Driver.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("无法生成随机司机", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateDriver(driver); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.ConstraintName == "drivers_username_key" {
					// 随机生成的用户名重复，跳过即可
					slog.Warn("用户名已存在", slog.String("username", driver.Username))
					continue
				}
				slog.Error("无法插入司机", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入司机成功", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的任务数量")
			return
		}

		driverIDs := []int64{driverID}
		if driverID == 0 {
			drivers, err := repo.GetAllDrivers()
			if err != nil {
				slog.Error("无法获取所有司机", slog.String("error", err.Error()))
				return
			}
			driverIDs = driverIDs[:0]
			for _, driver := range drivers {
				driverIDs = append(driverIDs, driver.ID)
			}
		}

		cnt := 0
		for _, id := range driverIDs {
			for i := 0; i < n; i++ {
				job := utils.GenerateRandomJob(id)
				if err := repo.CreateJob(job); err != nil {
					slog.Error("无法插入任务", slog.String("error", err.Error()))
					continue
				}

				cnt++
			}
		}

		slog.Info("插入任务成功", slog.Int("count", cnt))
	case 3:
		if driverID <= 0 {
			slog.Error("请输入合法的司机 ID")
			return
		}

		if _, err := repo.GetDriverByID(driverID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("指定的司机不存在", slog.Int64("driver_id", driverID))
			default:
				slog.Error("无法获取司机", slog.String("error", err.Error()))
			}
			return
		}

		seed.SeedJobsFromCSV(repo, csvPath, driverID)
	default:
		slog.Error("指定的操作非法")
	}
}
