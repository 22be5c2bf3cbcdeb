package server

import (
	"context"
	"strconv"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/juev/completion-lsp/internal/completion"
	"github.com/juev/completion-lsp/internal/symbols"
)

const configSection = "completionLsp"

type completionSettings struct {
	AddCallParenthesis      bool
	AddCallArgumentSnippets bool
	Snippets                bool
	MaxResults              int
}

type symbolsSettings struct {
	Files []string
}

type serverSettings struct {
	Completion completionSettings
	Symbols    symbolsSettings
	Limits     symbols.Limits
}

func defaultServerSettings() serverSettings {
	return serverSettings{
		Completion: completionSettings{
			AddCallParenthesis:      true,
			AddCallArgumentSnippets: true,
			Snippets:                true,
			MaxResults:              100,
		},
		Limits: symbols.DefaultLimits(),
	}
}

func normalizeServerSettings(settings serverSettings) serverSettings {
	defaults := defaultServerSettings()
	if settings.Completion.MaxResults <= 0 {
		settings.Completion.MaxResults = defaults.Completion.MaxResults
	}
	if settings.Limits.MaxFileSizeBytes <= 0 {
		settings.Limits.MaxFileSizeBytes = defaults.Limits.MaxFileSizeBytes
	}
	return settings
}

// completionConfig derives the rendering config for one request. Snippets
// need both the client capability and the setting.
func (settings serverSettings) completionConfig(clientSnippets bool) completion.Config {
	return completion.Config{
		AddCallParenthesis:      settings.Completion.AddCallParenthesis,
		AddCallArgumentSnippets: settings.Completion.AddCallArgumentSnippets,
		SnippetCap:              completion.NewSnippetCap(clientSnippets && settings.Completion.Snippets),
	}
}

func (s *Server) setSettings(settings serverSettings) {
	settings = normalizeServerSettings(settings)
	s.settingsMu.Lock()
	s.settings = settings
	s.settingsMu.Unlock()
}

func (s *Server) getSettings() serverSettings {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()
	return s.settings
}

func (s *Server) refreshConfiguration(ctx context.Context) {
	if s.client == nil || !s.supportsConfiguration {
		return
	}
	result, err := s.client.Configuration(ctx, &protocol.ConfigurationParams{
		Items: []protocol.ConfigurationItem{
			{Section: configSection},
		},
	})
	if err != nil {
		s.logger.Debug("configuration request failed", zap.Error(err))
		return
	}
	if len(result) == 0 {
		return
	}
	settings := parseSettingsFromRaw(s.getSettings(), result[0])
	s.setSettings(settings)
}

func (s *Server) DidChangeConfiguration(_ context.Context, params *protocol.DidChangeConfigurationParams) error {
	if params != nil && params.Settings != nil {
		s.setSettings(parseSettingsFromRaw(s.getSettings(), params.Settings))
	}
	go s.refreshConfiguration(context.Background())
	return nil
}

func parseSettingsFromRaw(base serverSettings, raw interface{}) serverSettings {
	settings := base
	rawMap, ok := raw.(map[string]interface{})
	if !ok {
		return normalizeServerSettings(settings)
	}
	if nested, ok := rawMap[configSection]; ok {
		return parseSettingsFromRaw(settings, nested)
	}
	settings = applySettingsMap(settings, rawMap)
	return normalizeServerSettings(settings)
}

func applySettingsMap(settings serverSettings, raw map[string]interface{}) serverSettings {
	if completionRaw, ok := raw["completion"].(map[string]interface{}); ok {
		settings.Completion = applyCompletionSettings(settings.Completion, completionRaw, "")
	}
	settings.Completion = applyCompletionSettings(settings.Completion, raw, "completion.")

	if symbolsRaw, ok := raw["symbols"].(map[string]interface{}); ok {
		if files, ok := toStringSlice(symbolsRaw["files"]); ok {
			settings.Symbols.Files = files
		}
	}
	if files, ok := toStringSlice(raw["symbols.files"]); ok {
		settings.Symbols.Files = files
	}

	if limitsRaw, ok := raw["limits"].(map[string]interface{}); ok {
		if value, ok := toInt64(limitsRaw["maxFileSizeBytes"]); ok {
			settings.Limits.MaxFileSizeBytes = value
		}
	}
	if value, ok := toInt64(raw["limits.maxFileSizeBytes"]); ok {
		settings.Limits.MaxFileSizeBytes = value
	}

	return settings
}

func applyCompletionSettings(settings completionSettings, raw map[string]interface{}, prefix string) completionSettings {
	if value, ok := toBool(raw[prefix+"addCallParenthesis"]); ok {
		settings.AddCallParenthesis = value
	}
	if value, ok := toBool(raw[prefix+"addCallArgumentSnippets"]); ok {
		settings.AddCallArgumentSnippets = value
	}
	if value, ok := toBool(raw[prefix+"snippets"]); ok {
		settings.Snippets = value
	}
	if value, ok := toInt(raw[prefix+"maxResults"]); ok {
		settings.MaxResults = value
	}
	return settings
}

func toBool(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return parsed, true
	}
	return false, false
}

func toInt(value interface{}) (int, bool) {
	v, ok := toInt64(value)
	return int(v), ok
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false
		}
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func toStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out, true
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, true
		}
		return []string{strings.TrimSpace(v)}, true
	}
	return nil, false
}
