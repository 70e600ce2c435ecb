package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с DirectoryService
// DirectoryService владеет справочными данными: компании, сотрудники,
// услуги, клиенты. Движок бронирования только читает их.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента DirectoryService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCompany получает компанию по ID
func (c *Client) GetCompany(ctx context.Context, companyID int64) (*Company, error) {
	url := fmt.Sprintf("%s/internal/companies/%d", c.baseURL, companyID)

	var company Company
	if err := c.get(ctx, url, &company, ErrCompanyNotFound); err != nil {
		return nil, err
	}

	return &company, nil
}

// GetEmployee получает сотрудника по ID (включая недельное расписание)
func (c *Client) GetEmployee(ctx context.Context, employeeID int64) (*Employee, error) {
	url := fmt.Sprintf("%s/internal/employees/%d", c.baseURL, employeeID)

	var employee Employee
	if err := c.get(ctx, url, &employee, ErrEmployeeNotFound); err != nil {
		return nil, err
	}

	return &employee, nil
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.get(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetCustomer получает клиента по ID
func (c *Client) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	url := fmt.Sprintf("%s/internal/customers/%d", c.baseURL, customerID)

	var customer Customer
	if err := c.get(ctx, url, &customer, ErrCustomerNotFound); err != nil {
		return nil, err
	}

	return &customer, nil
}

// ListEmployeesByService получает всех сотрудников, оказывающих услугу
func (c *Client) ListEmployeesByService(ctx context.Context, serviceID int64) ([]*Employee, error) {
	url := fmt.Sprintf("%s/internal/services/%d/employees", c.baseURL, serviceID)

	var employees []*Employee
	if err := c.get(ctx, url, &employees, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return employees, nil
}

// get выполняет GET запрос и декодирует ответ в dst
// notFound возвращается на 404 от сервиса
func (c *Client) get(ctx context.Context, url string, dst interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid identifier format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
