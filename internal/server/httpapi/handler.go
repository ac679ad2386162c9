package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/server/models"
	"github.com/ansapra/ansapra/internal/server/services"
)

type registerRequest struct {
	Email         string          `json:"email"`
	Password      string          `json:"password"`
	Questionnaire json.RawMessage `json:"questionnaire"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {

	s.logger.Info(r.Context(), "Registration request")

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "邮箱、密码和问卷不能为空")
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Email, req.Password, req.Questionnaire)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "邮箱、密码和问卷不能为空")
		case errors.Is(err, common.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "该邮箱已注册")
		default:
			s.logger.Error(r.Context(), err.Error())
			writeError(w, http.StatusInternalServerError, "服务器错误")
		}
		return
	}

	s.logger.Info(r.Context(), "Registered", "email", user.Email)

	setSessionCookie(w, r, token, s.users.TokenValidity())
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "注册成功",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "邮箱和密码不能为空")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "邮箱和密码不能为空")
		case errors.Is(err, common.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "邮箱或密码错误")
		default:
			s.logger.Error(r.Context(), err.Error())
			writeError(w, http.StatusInternalServerError, "服务器错误")
		}
		return
	}

	setSessionCookie(w, r, token, s.users.TokenValidity())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "登录成功",
		"last_page": user.LastPage,
	})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "登出成功",
	})
}

func (s *HTTPServer) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"settings": user.Settings,
	})
}

func (s *HTTPServer) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var patch models.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "设置格式无效")
		return
	}

	if _, err := s.users.UpdateSettings(r.Context(), user.ID, patch); err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, statusForError(err), "服务器错误")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "设置更新成功",
	})
}

func (s *HTTPServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "文件过大")
			return
		}
		writeError(w, http.StatusBadRequest, "未选择文件")
		return
	}
	defer file.Close()

	if header.Filename == "" || !services.AllowedFile(header.Filename) {
		writeError(w, http.StatusBadRequest, "不支持的文件类型，仅支持 PDF 和 DOCX")
		return
	}

	result, err := s.readings.SubmitDocument(r.Context(), user, services.Upload{
		Filename: header.Filename,
		Data:     file,
		Keywords: r.FormValue("keywords"),
		Title:    r.FormValue("title"),
	})
	if err != nil {
		s.logger.Error(r.Context(), "Upload failed", "error", err.Error())
		if errors.Is(err, common.ErrExternalService) {
			writeError(w, http.StatusInternalServerError, "解读服务调用失败")
			return
		}
		writeError(w, statusForError(err), "服务器错误")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"interpretation": result.Interpretation,
		"related_papers": result.RelatedPapers,
		"reading_record": result.Record,
	})
}

func (s *HTTPServer) handleReadingHistory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	history, err := s.readings.ListHistory(r.Context(), user.ID)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "服务器错误")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"history": history,
	})
}

type annotationRequest struct {
	RecordID   string `json:"record_id"`
	Annotation string `json:"annotation"`
}

func (s *HTTPServer) handleSaveAnnotation(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req annotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "批注格式无效")
		return
	}

	if err := s.readings.SaveAnnotation(r.Context(), user.ID, req.RecordID, req.Annotation); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "阅读记录不存在")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "服务器错误")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "批注保存成功",
	})
}

func (s *HTTPServer) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.users.DeleteAccount(r.Context(), user.ID); err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, statusForError(err), "服务器错误")
		return
	}

	s.logger.Info(r.Context(), "Account deleted", "email", user.Email)

	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "账户已删除",
	})
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
