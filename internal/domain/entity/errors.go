package entity

import "fmt"

// InvalidImageError растр не может быть нормализован или аннотирован
type InvalidImageError struct {
	Reason   string
	Width    int
	Height   int
	Channels int
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image (%dx%dx%d): %s", e.Width, e.Height, e.Channels, e.Reason)
}

// UnsupportedModeError режим анализа вне объявленного перечисления
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported analysis mode %q", e.Mode)
}

// InvalidConfigError параметр анализа вне допустимого диапазона
type InvalidConfigError struct {
	Field string
	Value any
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid analysis config: %s=%v", e.Field, e.Value)
}

// UnsupportedFormatError загруженный файл не является JPEG или PNG
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return "unsupported image format"
	}
	return fmt.Sprintf("unsupported image format %q", e.Format)
}
