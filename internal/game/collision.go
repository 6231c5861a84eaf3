package game

// CircleCircleCollision проверяет пересечение двух окружностей.
// Сравнение идет по квадрату расстояния - без sqrt в горячем пути.
// При пересечении возвращает вектор от первого центра ко второму.
func CircleCircleCollision(p1 Vector2, r1 float64, p2 Vector2, r2 float64) (Vector2, bool) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	if dx*dx+dy*dy < r1*r2 {
		return Vector2{X: dx, Y: dy}, true
	}
	return Vector2{}, false
}

// CircleRectCollision проверяет пересечение окружности с прямоугольником
// (rect - левый верхний угол). При пересечении возвращает вектор от центра
// окружности к ближайшей точке прямоугольника - по нему видно ось проникновения.
func CircleRectCollision(circle Vector2, radius float64, rect Vector2, w, h float64) (Vector2, bool) {
	// Ближайшая к центру точка прямоугольника.
	closestX := circle.X
	if circle.X < rect.X {
		closestX = rect.X
	} else if circle.X > rect.X+w {
		closestX = rect.X + w
	}

	closestY := circle.Y
	if circle.Y < rect.Y {
		closestY = rect.Y
	} else if circle.Y > rect.Y+h {
		closestY = rect.Y + h
	}

	dx := closestX - circle.X
	dy := closestY - circle.Y

	if dx*dx+dy*dy < radius*radius {
		return Vector2{X: dx, Y: dy}, true
	}
	return Vector2{}, false
}
