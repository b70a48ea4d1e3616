package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/optimizing"
	"github.com/vfg2006/ads-optimizer-api/pkg/apiErrors"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

const (
	formBulk        = "bulk"
	formSearchTerms = "search_terms"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// multipartMemory é quanto do upload fica em memória antes de ir para disco
	multipartMemory = 32 << 20
)

// CreateOptimization recebe o bulk (e opcionalmente o relatório de termos),
// roda o otimizador e devolve o identificador da planilha gerada
func CreateOptimization(service optimizing.Optimizer, defaults domain.Settings, maxUploadMB int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadMB<<20)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				apiErrors.WriteError(w, apiErrors.ErrPayloadTooBig, fmt.Sprintf("O upload excede o limite de %d MB", maxUploadMB), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Envie as planilhas como multipart/form-data", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		settings, err := settingsFromForm(r.MultipartForm.Value, defaults)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		bulkFile, _, err := r.FormFile(formBulk)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "O arquivo bulk é obrigatório", map[string]string{"field": formBulk})
			return
		}
		defer bulkFile.Close()

		in := optimizing.Input{Bulk: bulkFile, Settings: settings}

		termsFile, _, err := r.FormFile(formSearchTerms)
		switch {
		case err == nil:
			defer termsFile.Close()
			in.SearchTerms = termsFile
		case !errors.Is(err, http.ErrMissingFile):
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Não foi possível ler o relatório de termos", map[string]string{"field": formSearchTerms})
			return
		}

		stored, err := service.OptimizeAndStore(r.Context(), in)
		if err != nil {
			logger.WithError(err).Warn("Otimização não concluída")
			apiErrors.WriteFromError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(stored); err != nil {
			logger.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

// DownloadOptimization devolve a planilha gerada enquanto ela não expira
func DownloadOptimization(service optimizing.Optimizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Identificador da planilha não informado", nil)
			return
		}

		blob, err := service.Download(r.Context(), id)
		if err != nil {
			if !errors.Is(err, domain.ErrBlobNotFound) {
				log.ForContext(r.Context()).WithError(err).Error("Erro ao buscar planilha")
			}
			apiErrors.WriteFromError(w, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", blob.Name))
		w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(blob.Data); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar planilha")
		}
	})
}

// settingsFromForm aplica sobre os padrões da configuração os campos enviados no formulário
func settingsFromForm(values map[string][]string, defaults domain.Settings) (domain.Settings, error) {
	settings := defaults
	get := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	if raw := get("target_acos"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return settings, domain.NewValidationError("target_acos", raw, "must be a number")
		}
		settings.TargetACOS = value
	}

	if raw := get("multiplier"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return settings, domain.NewValidationError("multiplier", raw, "must be a number")
		}
		settings.NegationMultiplier = value
	}

	if raw := get("min_search_volume"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return settings, domain.NewValidationError("min_search_volume", raw, "must be an integer")
		}
		settings.MinSearchVolume = value
	}

	if raw := get("ad_product"); raw != "" {
		product, err := domain.ParseAdProduct(raw)
		if err != nil {
			return settings, err
		}
		settings.AdProduct = product
	}

	for _, field := range []struct {
		key    string
		target **time.Time
	}{
		{"start_date", &settings.StartDate},
		{"end_date", &settings.EndDate},
	} {
		date, err := utils.ParseDate(get(field.key))
		if err != nil {
			return settings, domain.NewValidationError(field.key, get(field.key), "must be a date in YYYY-MM-DD format")
		}
		if date != nil {
			*field.target = date
		}
	}

	return settings, nil
}
