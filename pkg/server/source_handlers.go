package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm/clause"
	"sigs.k8s.io/yaml"

	"github.com/ustclug/tailr/pkg/api"
	"github.com/ustclug/tailr/pkg/model"
	"github.com/ustclug/tailr/pkg/set"
	"github.com/ustclug/tailr/pkg/tail"
	"github.com/ustclug/tailr/pkg/take"
	"github.com/ustclug/tailr/pkg/utils"
)

func (s *Server) handlerListSources(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	var sources []model.Source
	err := s.getDB(c).
		Select("name", "path", "description").
		Order("name").
		Find(&sources).Error
	if err != nil {
		const msg = "Fail to list Sources"
		l.Error(msg, utils.SlogErrAttr(err))
		return newHTTPError(http.StatusInternalServerError, msg)
	}

	resp := make(api.ListSourcesResponse, len(sources))
	for i, src := range sources {
		resp[i] = api.ListSourcesResponseItem{
			Name:        src.Name,
			Path:        src.Path,
			Description: src.Description,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getSource(c echo.Context, l *slog.Logger) (*model.Source, error) {
	name, err := getRequiredParamFromEchoContext(c, "name")
	if err != nil {
		return nil, err
	}

	var src model.Source
	res := s.getDB(c).
		Where(model.Source{
			Name: name,
		}).
		Limit(1).
		Find(&src)
	if res.Error != nil {
		const msg = "Fail to get Source"
		l.Error(msg, utils.SlogErrAttr(res.Error))
		return nil, newHTTPError(http.StatusInternalServerError, msg)
	}
	if res.RowsAffected == 0 {
		return nil, notFound("Source not found")
	}
	return &src, nil
}

func (s *Server) handlerGetSource(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	src, err := s.getSource(c, l)
	if err != nil {
		return err
	}

	resp := api.GetSourceResponse{
		Name:        src.Name,
		Path:        src.Path,
		Description: src.Description,
		Size:        -1,
		Lines:       -1,
		UpdatedAt:   src.UpdatedAt,
	}
	f, err := os.Open(src.Path)
	if err != nil {
		l.Warn("Fail to open source", utils.SlogErrAttr(err), slog.String("path", src.Path))
		return c.JSON(http.StatusOK, resp)
	}
	defer f.Close()
	totals, err := tail.Count(f)
	if err != nil {
		l.Warn("Fail to count source", utils.SlogErrAttr(err), slog.String("path", src.Path))
		return c.JSON(http.StatusOK, resp)
	}
	resp.Size = totals.Bytes
	resp.Lines = totals.Lines
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handlerRemoveSource(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	name, err := getRequiredParamFromEchoContext(c, "name")
	if err != nil {
		return err
	}

	err = s.getDB(c).Where(model.Source{Name: name}).Delete(&model.Source{}).Error
	if err != nil {
		const msg = "Fail to delete Source"
		l.Error(msg, utils.SlogErrAttr(err))
		return newHTTPError(http.StatusInternalServerError, msg)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) loadSource(ctx context.Context, logger *slog.Logger, dirs []string, file string) (*model.Source, error) {
	l := logger.With(slog.String("config", file))

	var src model.Source
	found := false
	for _, dir := range dirs {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		found = true
		// Later directories override earlier ones.
		err = yaml.Unmarshal(data, &src)
		if err != nil {
			return nil, badRequest(err.Error())
		}
	}
	if !found {
		return nil, notFound(fmt.Sprintf("File not found: %q", file))
	}
	if len(src.Name) == 0 {
		src.Name = strings.TrimSuffix(file, suffixYAML)
	}

	if err := s.e.Validator.Validate(&src); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&src).Error
	if err != nil {
		const msg = "Fail to create Source"
		l.Error(msg, utils.SlogErrAttr(err))
		return nil, newHTTPError(http.StatusInternalServerError, msg)
	}
	l.Debug("Source loaded", slog.String("name", src.Name))
	return &src, nil
}

// reloadAllSources loads every definition found in the config directories
// and deletes the sources whose definition is gone.
func (s *Server) reloadAllSources(ctx context.Context, l *slog.Logger) error {
	var names []string
	db := s.db.WithContext(ctx)
	err := db.Model(&model.Source{}).Pluck("name", &names).Error
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	l.Info("Reloading all sources")
	toDelete := set.New(names...)
	for _, dir := range s.config.SourceConfigDir {
		infos, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				l.Warn("Fail to list dir", utils.SlogErrAttr(err), slog.String("dir", dir))
			}
			continue
		}
		for _, info := range infos {
			fileName := info.Name()
			if info.IsDir() || fileName[0] == '.' || !strings.HasSuffix(fileName, suffixYAML) {
				continue
			}
			src, err := s.loadSource(ctx, l, s.config.SourceConfigDir, fileName)
			if err != nil {
				return err
			}
			toDelete.Del(src.Name)
		}
	}

	if len(toDelete) == 0 {
		return nil
	}
	l.Info("Deleting unnecessary sources")
	err = db.Where("name IN ?", toDelete.ToList()).Delete(&model.Source{}).Error
	if err != nil {
		return fmt.Errorf("delete sources: %w", err)
	}
	return nil
}

func (s *Server) handlerReloadAllSources(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	err := s.reloadAllSources(c.Request().Context(), l)
	s.metrics.ObserveReload(err)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		const msg = "Fail to reload Sources"
		l.Error(msg, utils.SlogErrAttr(err))
		return newHTTPError(http.StatusInternalServerError, msg)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handlerReloadSource(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	name, err := getRequiredParamFromEchoContext(c, "name")
	if err != nil {
		return err
	}
	_, err = s.loadSource(c.Request().Context(), l, s.config.SourceConfigDir, name+suffixYAML)
	s.metrics.ObserveReload(err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) parseTailRequest(c echo.Context, req *api.GetSourceTailRequest) (tail.Unit, take.Value, error) {
	query := c.QueryParams()
	if query.Has("bytes") {
		v, err := take.Parse(req.Bytes)
		if err != nil {
			return tail.Bytes, v, badRequest(badByteCount(err).Error())
		}
		return tail.Bytes, v, nil
	}
	if query.Has("lines") {
		v, err := take.Parse(req.Lines)
		if err != nil {
			return tail.Lines, v, badRequest(badLineCount(err).Error())
		}
		return tail.Lines, v, nil
	}
	return tail.Lines, s.config.DefaultLines, nil
}

func (s *Server) handlerGetSourceTail(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	src, err := s.getSource(c, l)
	if err != nil {
		return err
	}

	var req api.GetSourceTailRequest
	err = bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	unit, val, err := s.parseTailRequest(c, &req)
	if err != nil {
		return err
	}

	f, err := os.Open(src.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return notFound(fmt.Sprintf("No such file: %q", src.Path))
		}
		const msg = "Fail to open source"
		l.Error(msg, utils.SlogErrAttr(err))
		return newHTTPError(http.StatusInternalServerError, msg)
	}
	defer f.Close()

	s.metrics.TailRequests.WithLabelValues(unit.String()).Inc()
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, echo.MIMEOctetStream)
	n, err := tail.New(f, unit, val).WriteTo(newFlushWriter(resp))
	s.metrics.BytesServed.Add(float64(n))
	if err != nil {
		l.Error("Fail to write tail", utils.SlogErrAttr(err), slog.Int64("written", n))
		if resp.Committed {
			return nil
		}
		return newHTTPError(http.StatusInternalServerError, "Fail to read source")
	}
	if !resp.Committed {
		return c.NoContent(http.StatusOK)
	}
	return nil
}
