package extractors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/LilVoxy/gdp_report/ETL/models"
	"github.com/LilVoxy/gdp_report/ETL/utils"
)

// DefaultBaseURL адрес API Всемирного банка
const DefaultBaseURL = "https://api.worldbank.org"

// apiRecord запись ряда в ответе API
type apiRecord struct {
	Date  string          `json:"date"`
	Value models.RawValue `json:"value"`
}

// apiMessage сообщение об ошибке, которое API возвращает вместо данных
type apiMessage struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// IndicatorExtractor извлекает ряд показателя по стране из API
type IndicatorExtractor struct {
	client    *http.Client
	baseURL   string
	indicator models.Indicator
	logger    *utils.ETLLogger
}

// NewIndicatorExtractor создает новый экземпляр IndicatorExtractor
func NewIndicatorExtractor(client *http.Client, baseURL string, indicator models.Indicator, logger *utils.ETLLogger) *IndicatorExtractor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &IndicatorExtractor{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		indicator: indicator,
		logger:    logger,
	}
}

// BuildURL формирует адрес запроса за диапазон лет включительно.
// per_page равен числу лет, чтобы весь диапазон уместился на одной странице.
func (e *IndicatorExtractor) BuildURL(countryCode string, startYear, endYear int) string {
	query := url.Values{}
	query.Set("date", fmt.Sprintf("%d:%d", startYear, endYear))
	query.Set("format", "json")
	query.Set("per_page", strconv.Itoa(endYear-startYear+1))

	return fmt.Sprintf("%s/v2/country/%s/indicator/%s?%s",
		e.baseURL,
		url.PathEscape(countryCode),
		url.PathEscape(e.indicator.Code),
		query.Encode(),
	)
}

// ExtractObservations выполняет один GET-запрос и разбирает ответ.
// Порядок записей соответствует ответу API.
func (e *IndicatorExtractor) ExtractObservations(ctx context.Context, countryCode string, startYear, endYear int) ([]models.RawObservation, error) {
	requestURL := e.BuildURL(countryCode, startYear, endYear)
	e.logger.Debug("Запрос к API: %s", requestURL)

	observations, err := e.fetch(ctx, requestURL)
	if err != nil {
		return nil, &FetchError{Country: countryCode, URL: requestURL, Err: err}
	}
	return observations, nil
}

func (e *IndicatorExtractor) fetch(ctx context.Context, requestURL string) ([]models.RawObservation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	return e.parse(body)
}

// parse разбирает тело ответа: массив из метаданных пагинации и списка записей
func (e *IndicatorExtractor) parse(body []byte) ([]models.RawObservation, error) {
	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}

	if len(envelope) < 2 {
		if len(envelope) == 1 {
			var apiErr struct {
				Message []apiMessage `json:"message"`
			}
			if err := json.Unmarshal(envelope[0], &apiErr); err == nil && len(apiErr.Message) > 0 {
				return nil, fmt.Errorf("%w: %s: %s", ErrUnexpectedResponse, apiErr.Message[0].Key, apiErr.Message[0].Value)
			}
		}
		return nil, fmt.Errorf("%w: ожидался массив из двух элементов, получено %d", ErrUnexpectedResponse, len(envelope))
	}

	var meta map[string]interface{}
	if err := json.Unmarshal(envelope[0], &meta); err == nil {
		e.logger.Debug("Метаданные ответа: страница %v из %v, всего записей %v", meta["page"], meta["pages"], meta["total"])
	}

	var records []apiRecord
	if err := json.Unmarshal(envelope[1], &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}

	observations := make([]models.RawObservation, 0, len(records))
	for _, record := range records {
		year, err := strconv.Atoi(strings.TrimSpace(record.Date))
		if err != nil {
			return nil, fmt.Errorf("%w: некорректный год %q", ErrMalformedRecord, record.Date)
		}
		observations = append(observations, models.RawObservation{
			Year:  year,
			Value: record.Value,
		})
	}

	return observations, nil
}
