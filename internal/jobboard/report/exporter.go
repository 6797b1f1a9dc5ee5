// Package report renders per-day application reports as spreadsheets: one
// header row, then one row per application grouped by job.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

const sheetName = "Applications"

var header = []any{
	"Job ID", "User ID", "Job Title", "Job Location", "Working Time",
	"Seniority Level", "Job Description", "Technical Skills", "Soft Skills",
	"User First Name", "User Last Name", "User Name", "User Email",
	"User Date Of Birth", "User Phone", "User Status", "User Resume",
	"User Technical Skills", "User Soft Skills",
}

type Exporter struct {
	dir string
}

// NewExporter writes report files under dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export writes the applications of each job group to a spreadsheet named
// deterministically from the company and date, and returns the file path.
// Zero applications across all groups fail with not-found before any file
// is created.
func (x *Exporter) Export(companyName, date string, groups []models.JobApplications) (string, error) {
	total := 0
	for _, group := range groups {
		total += len(group.Applications)
	}
	if total == 0 {
		return "", fmt.Errorf("%w: no applications to export", e.ErrNotFound)
	}

	file := excelize.NewFile()
	defer file.Close()
	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := file.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	rowIndex := 2
	for _, group := range groups {
		for _, entry := range group.Applications {
			cell, err := excelize.CoordinatesToCellName(1, rowIndex)
			if err != nil {
				return "", err
			}
			row := buildRow(group.Job, entry)
			if err := file.SetSheetRow(sheetName, cell, &row); err != nil {
				return "", fmt.Errorf("failed to write row %d: %w", rowIndex, err)
			}
			rowIndex++
		}
	}

	if err := os.MkdirAll(x.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(x.dir, fmt.Sprintf("applications_%s_%s.xlsx", companyName, date))
	if err := file.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

func buildRow(job models.Job, entry models.ApplicantApplication) []any {
	resume := ""
	if len(entry.Application.UserResume) > 0 {
		resume = entry.Application.UserResume[0].SecureURL
	}
	return []any{
		job.ID.String(),
		entry.User.ID.String(),
		job.JobTitle,
		string(job.JobLocation),
		string(job.WorkingTime),
		string(job.SeniorityLevel),
		job.JobDescription,
		strings.Join(job.TechnicalSkills, ","),
		strings.Join(job.SoftSkills, ","),
		entry.User.FirstName,
		entry.User.LastName,
		entry.User.Username,
		entry.User.Email,
		entry.User.DateOfBirth.Format("2006-01-02"),
		entry.User.MobileNumber,
		string(entry.User.Status),
		resume,
		strings.Join(entry.Application.UserTechSkills, ","),
		strings.Join(entry.Application.UserSoftSkills, ","),
	}
}
