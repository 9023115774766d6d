package utils

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateEpsilon проверяет валидность радиуса соседства (10 м - 1000 км)
func ValidateEpsilon(epsilonMeters float64) bool {
	return epsilonMeters >= 10 && epsilonMeters <= 1_000_000
}
