package game

import "math"

// Vector2 - двумерный вектор. Используется и для позиций, и для скоростей.
// Передается по значению, методы не мутируют получателя.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec2 - короткий конструктор.
func Vec2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector2) Scale(factor float64) Vector2 {
	return Vector2{X: v.X * factor, Y: v.Y * factor}
}

func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize возвращает вектор единичной длины в том же направлении.
// Нулевой вектор остается нулевым (никаких NaN).
func (v Vector2) Normalize() Vector2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / mag, Y: v.Y / mag}
}
