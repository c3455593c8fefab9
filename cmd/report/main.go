package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/Ekediee/course-allocation-backend/internal/config"
	"github.com/Ekediee/course-allocation-backend/internal/database"
	"github.com/Ekediee/course-allocation-backend/internal/logger"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
	"github.com/Ekediee/course-allocation-backend/internal/service"
)

// report prints the allocation status overview for the active session to the
// terminal. Meant for registry staff who want a quick look without the web
// dashboard.
func main() {
	cfg := config.Load()
	log := logger.Setup("error", cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		color.Red("Failed to connect to PostgreSQL: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	bulletinRepo := repository.NewBulletinRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	semesterRepo := repository.NewSemesterRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	stateRepo := repository.NewAllocationStateRepository(pool)
	overviewRepo := repository.NewOverviewRepository(pool)

	// No redis client: the overview service falls back to computing fresh.
	overviewService := service.NewOverviewService(nil, log, sessionRepo, bulletinRepo,
		semesterRepo, departmentRepo, stateRepo, userRepo, overviewRepo)

	rows, err := overviewService.SessionOverview(ctx)
	if err != nil {
		color.Red("Overview failed: %v", err)
		os.Exit(1)
	}
	stats, err := overviewService.SessionStats(ctx)
	if err != nil {
		color.Red("Stats failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("\n=== Course Allocation Overview — %s ===", stats.SessionName)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Department", "School", "HOD", "Status", "Allocated", "Total", "Rate"})

	for _, row := range rows {
		table.Append([]string{
			row.DepartmentName,
			row.SchoolName,
			row.HODName,
			row.Status,
			strconv.Itoa(row.AllocatedSlots),
			strconv.Itoa(row.TotalSlots),
			fmt.Sprintf("%.1f%%", row.AllocationRate),
		})
	}

	table.Render()

	color.Yellow("\nSession Summary")
	summary := tablewriter.NewWriter(os.Stdout)
	summary.SetHeader([]string{"Departments", "Started", "Fully Allocated", "Submitted", "Vetted", "Allocations", "Compliance"})
	summary.Append([]string{
		strconv.Itoa(stats.TotalDepartments),
		strconv.Itoa(stats.DepartmentsStarted),
		strconv.Itoa(stats.DepartmentsAllocated),
		strconv.Itoa(stats.DepartmentsSubmitted),
		strconv.Itoa(stats.DepartmentsVetted),
		strconv.Itoa(stats.TotalAllocations),
		fmt.Sprintf("%.1f%%", stats.ComplianceScore),
	})
	summary.Render()
}
