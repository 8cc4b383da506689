package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-board-api/internal/board"
	"github.com/yukikurage/task-board-api/internal/constants"
	"github.com/yukikurage/task-board-api/internal/dto"
	apierrors "github.com/yukikurage/task-board-api/internal/errors"
	"github.com/yukikurage/task-board-api/internal/models"
)

const allStatuses = "all"

// PreferencesHandler remembers the list view of a browser session.
type PreferencesHandler struct{}

func NewPreferencesHandler() *PreferencesHandler {
	return &PreferencesHandler{}
}

// GetPreferences returns the stored view, or the default one.
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, loadPreferences(c))
}

// UpdatePreferences validates and stores the view. Omitted fields are
// reset to their defaults.
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req dto.PreferencesDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	prefs, ok := normalizePreferences(req)
	if !ok {
		apierrors.InvalidFormat(c, "Invalid status or sort")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyStatusView, prefs.Status)
	session.Set(constants.SessionKeySortView, prefs.Sort)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, prefs)
}

func defaultPreferences() dto.PreferencesDTO {
	return dto.PreferencesDTO{Status: allStatuses, Sort: string(board.SortDueDate)}
}

// loadPreferences reads the session view. Requests served without the
// session middleware get the defaults.
func loadPreferences(c *gin.Context) dto.PreferencesDTO {
	prefs := defaultPreferences()
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return prefs
	}

	session := sessions.Default(c)
	if v, ok := session.Get(constants.SessionKeyStatusView).(string); ok {
		prefs.Status = v
	}
	if v, ok := session.Get(constants.SessionKeySortView).(string); ok {
		prefs.Sort = v
	}
	return prefs
}

func normalizePreferences(in dto.PreferencesDTO) (dto.PreferencesDTO, bool) {
	out := defaultPreferences()

	if in.Status != "" && in.Status != allStatuses {
		if !models.TaskStatus(in.Status).Valid() {
			return out, false
		}
		out.Status = in.Status
	}

	sortKey, err := board.ParseSortKey(in.Sort)
	if err != nil {
		return out, false
	}
	out.Sort = string(sortKey)
	return out, true
}
