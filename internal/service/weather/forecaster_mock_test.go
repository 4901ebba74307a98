package weather

import (
	"context"
	"sync"

	"github.com/heartmarshall/nivara-backend/internal/provider"
)

var _ forecaster = &forecasterMock{}

type forecasterMock struct {
	ForecastFunc func(ctx context.Context, lat, lon float64) (provider.Forecast, error)

	calls struct {
		Forecast []struct {
			Ctx context.Context
			Lat float64
			Lon float64
		}
	}
	lockForecast sync.RWMutex
}

func (mock *forecasterMock) Forecast(ctx context.Context, lat, lon float64) (provider.Forecast, error) {
	if mock.ForecastFunc == nil {
		panic("forecasterMock.ForecastFunc: method is nil but forecaster.Forecast was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Lat float64
		Lon float64
	}{Ctx: ctx, Lat: lat, Lon: lon}
	mock.lockForecast.Lock()
	mock.calls.Forecast = append(mock.calls.Forecast, callInfo)
	mock.lockForecast.Unlock()
	return mock.ForecastFunc(ctx, lat, lon)
}

func (mock *forecasterMock) ForecastCalls() []struct {
	Ctx context.Context
	Lat float64
	Lon float64
} {
	mock.lockForecast.RLock()
	calls := mock.calls.Forecast
	mock.lockForecast.RUnlock()
	return calls
}
