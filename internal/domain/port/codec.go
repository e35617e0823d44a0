package port

import "medvision/internal/domain/entity"

// ImageCodec адаптер загрузки и выгрузки изображений
type ImageCodec interface {
	// Decode превращает байты файла в растр
	Decode(data []byte) (*entity.Raster, error)

	// Encode кодирует растр в указанный формат (jpeg или png)
	Encode(r *entity.Raster, format string) ([]byte, error)

	// Accepts сообщает, принимается ли файл с таким именем
	Accepts(filename string) bool
}
