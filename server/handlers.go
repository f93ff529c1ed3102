package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"storecheck/database"
	"storecheck/exporter"
	"storecheck/importer"
	"storecheck/matching"
	apperrors "storecheck/server/errors"
	"storecheck/server/middleware"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CheckRequest is the manual-entry duplicate check payload. Permissive
// defaults to true: the UI wants reviewable near-matches, not only
// certain ones.
type CheckRequest struct {
	matching.QueryRecord
	Permissive *bool `json:"permissive"`
}

// CheckResponse carries the ranked matches for one or more queries.
type CheckResponse struct {
	Count   int                    `json:"count"`
	Matches []matching.MatchResult `json:"matches"`
	Note    string                 `json:"note,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	n, err := s.db.CountStores(c.Request.Context())
	if err != nil {
		s.respondError(c, apperrors.NewInternalError("failed to count stores", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "master_stores": n})
}

func (s *Server) handleCheck(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperrors.NewValidationError("invalid request body", err))
		return
	}

	if strings.TrimSpace(req.StoreName) == "" {
		s.respondError(c, apperrors.NewValidationError("store_name is required", nil))
		return
	}
	if strings.TrimSpace(req.Region) == "" {
		s.respondError(c, apperrors.NewValidationError("region is required", nil))
		return
	}

	candidates, err := s.db.StoresByRegion(c.Request.Context(), req.Region)
	if err != nil {
		s.respondError(c, apperrors.NewInternalError("failed to load master stores", err))
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusOK, CheckResponse{
			Matches: []matching.MatchResult{},
			Note:    fmt.Sprintf("no existing stores found in region %q", strings.TrimSpace(req.Region)),
		})
		return
	}

	permissive := true
	if req.Permissive != nil {
		permissive = *req.Permissive
	}

	matches := s.engine.FindMatches(req.QueryRecord, candidates, permissive)
	matching.SortByScore(matches)
	if matches == nil {
		matches = []matching.MatchResult{}
	}

	c.JSON(http.StatusOK, CheckResponse{Count: len(matches), Matches: matches})
}

func (s *Server) handleUpload(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		s.respondError(c, apperrors.NewValidationError("upload must include a file field named 'file'", err))
		return
	}
	defer file.Close()

	records, err := importer.ParseNewStores(file)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if len(records) > s.cfg.MaxUploadRows {
		s.respondError(c, apperrors.NewValidationError(
			fmt.Sprintf("upload has %d rows, limit is %d", len(records), s.cfg.MaxUploadRows), nil))
		return
	}

	// The importer guarantees a single region across all rows.
	candidates, err := s.db.StoresByRegion(c.Request.Context(), records[0].Region)
	if err != nil {
		s.respondError(c, apperrors.NewInternalError("failed to load master stores", err))
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusOK, CheckResponse{
			Matches: []matching.MatchResult{},
			Note:    fmt.Sprintf("no existing stores found in region %q", strings.TrimSpace(records[0].Region)),
		})
		return
	}

	perQuery := s.engine.FindMatchesBatch(records, candidates, true)
	var all []matching.MatchResult
	for _, matches := range perQuery {
		all = append(all, matches...)
	}
	matching.SortByScore(all)
	if all == nil {
		all = []matching.MatchResult{}
	}

	if c.Query("format") == "xlsx" {
		s.writeResultsWorkbook(c, all)
		return
	}
	c.JSON(http.StatusOK, CheckResponse{Count: len(all), Matches: all})
}

func (s *Server) handleTemplate(c *gin.Context) {
	f, err := exporter.BuildTemplate()
	if err != nil {
		s.respondError(c, apperrors.NewInternalError("failed to build template", err))
		return
	}
	defer f.Close()
	s.writeWorkbook(c, f, "new_store_template.xlsx")
}

// ExportRequest carries previously returned match results back for
// spreadsheet export.
type ExportRequest struct {
	Results []matching.MatchResult `json:"results"`
}

func (s *Server) handleExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperrors.NewValidationError("invalid request body", err))
		return
	}
	if len(req.Results) == 0 {
		s.respondError(c, apperrors.NewValidationError("results must not be empty", nil))
		return
	}
	s.writeResultsWorkbook(c, req.Results)
}

// writeResultsWorkbook streams the results as a workbook, enriched with
// monthly sell-through columns for the matched stores.
func (s *Server) writeResultsWorkbook(c *gin.Context, results []matching.MatchResult) {
	custIDs := make([]string, 0, len(results))
	seen := make(map[string]bool)
	for _, r := range results {
		if id := r.Store.CustID; id != "" && !seen[id] {
			seen[id] = true
			custIDs = append(custIDs, id)
		}
	}

	sellThrough, months, err := s.db.MonthlySellThrough(
		c.Request.Context(), custIDs, database.SellThroughCutoff(time.Now()))
	if err != nil {
		s.respondError(c, apperrors.NewInternalError("failed to load sell-through data", err))
		return
	}

	f, err := exporter.BuildResultsWorkbook(results, sellThrough, months)
	if err != nil {
		s.respondError(c, apperrors.NewInternalError("failed to build results workbook", err))
		return
	}
	defer f.Close()
	s.writeWorkbook(c, f, "duplicates.xlsx")
}

func (s *Server) writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", workbookContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		s.logger.Error("failed to stream workbook",
			"request_id", middleware.GetRequestID(c), "error", err)
	}
}

// respondError maps application and upload validation errors to their
// status codes; anything else becomes a logged 500.
func (s *Server) respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode() >= http.StatusInternalServerError {
			s.logger.Error("internal error",
				"request_id", middleware.GetRequestID(c),
				"path", c.Request.URL.Path,
				"error", appErr.Error(),
			)
		}
		c.JSON(appErr.StatusCode(), gin.H{"message": appErr.UserMessage()})
		return
	}

	var uploadErr *importer.UploadError
	if errors.As(err, &uploadErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": uploadErr.Reason})
		return
	}

	s.logger.Error("unhandled error",
		"request_id", middleware.GetRequestID(c),
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}
