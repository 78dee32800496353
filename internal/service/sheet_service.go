package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/campusforge/recruit-backend/internal/category"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Sheet service errors.
var (
	ErrSheetEntryNotFound = errors.New("sheet entry not found")
	ErrAlreadyOnSheet     = repository.ErrDuplicateSheetEntry
)

// SheetService manages the shortlist sheet: curated, independently editable
// copies of submissions used by admins during final selection.
type SheetService struct {
	sheetRepo      *repository.SheetRepository
	submissionRepo *repository.SubmissionRepository
	log            zerolog.Logger
}

// NewSheetService creates a new SheetService.
func NewSheetService(sheetRepo *repository.SheetRepository, submissionRepo *repository.SubmissionRepository, log zerolog.Logger) *SheetService {
	return &SheetService{
		sheetRepo:      sheetRepo,
		submissionRepo: submissionRepo,
		log:            log.With().Str("component", "sheet_service").Logger(),
	}
}

// Add copies a submission onto the sheet. A submission can be on the sheet
// at most once; a second add returns ErrAlreadyOnSheet.
func (s *SheetService) Add(ctx context.Context, adminID uuid.UUID, submissionID uuid.UUID) (*model.SheetEntry, error) {
	sub, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, ErrSubmissionNotFound
	}

	entry := &model.SheetEntry{
		SubmissionID:       sub.ID,
		FullName:           sub.PersonalInfo.FullName,
		Email:              sub.PersonalInfo.Email,
		Phone:              sub.PersonalInfo.Phone,
		CollegeName:        sub.PersonalInfo.CollegeName,
		Department:         sub.PersonalInfo.Department,
		Role:               sub.PersonalInfo.Role,
		Year:               sub.PersonalInfo.Year,
		Semester:           sub.PersonalInfo.Semester,
		ProjectTitle:       sub.ProjectDetails.Title,
		ProjectDescription: sub.ProjectDetails.Description,
		WebsiteURL:         sub.ProjectDetails.WebsiteURL,
		GithubRepo:         sub.ProjectDetails.GithubRepo,
		MCQScore:           sub.MCQScore,
		AdminRating:        sub.AdminRating,
		AdminComments:      sub.AdminComments,
		Status:             string(sub.Status),
		Priority:           sub.Priority,
		Tags:               sub.Tags,
		Notes:              sub.Notes,
		AddedBy:            adminID,
	}

	if err := s.sheetRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateSheetEntry) {
			return nil, ErrAlreadyOnSheet
		}
		s.log.Error().Err(err).Str("submission_id", submissionID.String()).Msg("failed to add sheet entry")
		return nil, err
	}

	s.log.Info().Str("entry_id", entry.ID.String()).Str("submission_id", submissionID.String()).Msg("submission added to sheet")
	return entry, nil
}

// GetByID retrieves a sheet entry.
func (s *SheetService) GetByID(ctx context.Context, id uuid.UUID) (*model.SheetEntry, error) {
	entry, err := s.sheetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSheetEntryNotFound
	}
	return entry, nil
}

// List retrieves sheet entries page by page with filtering and search.
func (s *SheetService) List(ctx context.Context, filter model.SheetFilter, page, perPage int) ([]model.SheetEntry, int, int, error) {
	page, perPage = clampPage(page, perPage)
	entries, total, err := s.sheetRepo.ListPaginated(ctx, filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, 0, err
	}
	return entries, total, totalPages(total, perPage), nil
}

// Update edits an entry independently of its source submission and stamps
// the modifying admin.
func (s *SheetService) Update(ctx context.Context, adminID uuid.UUID, id uuid.UUID, req *model.UpdateSheetEntryRequest) (*model.SheetEntry, error) {
	entry, err := s.sheetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSheetEntryNotFound
	}

	applySheetUpdates(entry, req)
	entry.LastModifiedBy = &adminID
	now := time.Now()
	entry.LastModifiedAt = &now

	if err := s.sheetRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// BulkUpdate applies one edit across many entries. Missing ids are skipped;
// the returned count is how many entries were actually updated.
func (s *SheetService) BulkUpdate(ctx context.Context, adminID uuid.UUID, req *model.BulkSheetUpdateRequest) (int, error) {
	ids, err := parseUUIDs(req.EntryIDs)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, id := range ids {
		if _, err := s.Update(ctx, adminID, id, &req.Updates); err != nil {
			if errors.Is(err, ErrSheetEntryNotFound) {
				continue
			}
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// Remove deletes a sheet entry. The source submission is untouched.
func (s *SheetService) Remove(ctx context.Context, id uuid.UUID) error {
	affected, err := s.sheetRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSheetEntryNotFound
	}
	return nil
}

// BulkRemove deletes many entries, returning the removed count.
func (s *SheetService) BulkRemove(ctx context.Context, req *model.BulkSheetIDsRequest) (int64, error) {
	ids, err := parseUUIDs(req.EntryIDs)
	if err != nil {
		return 0, err
	}
	return s.sheetRepo.BulkDelete(ctx, ids)
}

var sheetExportHeader = []string{
	"Full Name", "Email", "Phone", "College", "Department", "Role", "Year", "Semester",
	"Project Title", "Website", "GitHub", "Drive", "Score %", "Rating", "Status", "Priority", "Notes",
}

func sheetExportRow(e *model.SheetEntry) []string {
	rating := ""
	if e.AdminRating != nil {
		rating = strconv.Itoa(*e.AdminRating)
	}
	return []string{
		e.FullName, e.Email, e.Phone, e.CollegeName, e.Department, e.Role, e.Year, e.Semester,
		e.ProjectTitle, e.WebsiteURL, e.GithubRepo, e.GoogleDriveURL,
		strconv.Itoa(e.MCQScore.Percentage), rating, e.Status, string(e.Priority), e.Notes,
	}
}

// ExportCSV renders the whole sheet as a CSV document.
func (s *SheetService) ExportCSV(ctx context.Context) ([]byte, error) {
	entries, err := s.sheetRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(sheetExportHeader)
	for i := range entries {
		_ = w.Write(sheetExportRow(&entries[i]))
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportXLSX renders the whole sheet as an Excel workbook.
func (s *SheetService) ExportXLSX(ctx context.Context) ([]byte, error) {
	entries, err := s.sheetRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Shortlist"
	f.SetSheetName(f.GetSheetName(0), sheetName)

	for col, title := range sheetExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	for i := range entries {
		for col, value := range sheetExportRow(&entries[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func applySheetUpdates(entry *model.SheetEntry, req *model.UpdateSheetEntryRequest) {
	if req.FullName != nil {
		entry.FullName = *req.FullName
	}
	if req.Email != nil {
		entry.Email = *req.Email
	}
	if req.Phone != nil {
		entry.Phone = *req.Phone
	}
	if req.CollegeName != nil {
		entry.CollegeName = *req.CollegeName
	}
	if req.Department != nil {
		entry.Department = *req.Department
	}
	if req.Role != nil {
		entry.Role = category.Normalize(*req.Role)
	}
	if req.GoogleDriveURL != nil {
		entry.GoogleDriveURL = *req.GoogleDriveURL
	}
	if req.AdminURL != nil {
		entry.AdminURL = *req.AdminURL
	}
	if req.Status != nil {
		entry.Status = *req.Status
	}
	if req.Priority != nil {
		entry.Priority = *req.Priority
	}
	if req.Tags != nil {
		entry.Tags = req.Tags
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
}
