// Package access реализует модель доступа маркетплейса: правила, решающие,
// какие данные плана видит аккаунт и какие мутации ему разрешены.
//
// Правила не зависят от транспорта и хранилища: на входе снимок
// запрашивающего аккаунта (Viewer) и целевой план, на выходе уровень
// видимости или доменная ошибка.
//
// Уровни видимости для чтения различаются между списком и единичным планом,
// и это различие сохранено намеренно ради совместимости контракта:
//
//   - в списке планов тренер видит полные данные всех планов, включая чужие;
//   - при чтении одного плана полный доступ только у владельца и подписчика,
//     тренер без подписки получает 403 с превью в теле ответа.
//
// Широкая выдача полного доступа любому тренеру в списке выглядит как
// непреднамеренный грант, но является документированным поведением;
// см. DESIGN.md, прежде чем её менять.
package access

import (
	"time"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Tier уровень видимости плана для аккаунта.
type Tier int

const (
	// TierPreview урезанная проекция: id, название, цена, длительность,
	// id и имя тренера. Описание скрыто.
	TierPreview Tier = iota
	// TierFull полные данные плана.
	TierFull
)

// String возвращает текстовое имя уровня видимости.
func (t Tier) String() string {
	if t == TierFull {
		return "full"
	}
	return "preview"
}

// Viewer снимок запрашивающего аккаунта с загруженными множествами
// подписок и фолловингов. Собирается один раз на запрос.
type Viewer struct {
	UID           string
	Role          models.Role
	Subscriptions map[string]time.Time // uid плана -> момент подписки
	Following     map[string]struct{}  // uid тренеров
}

// IsSubscribedTo сообщает, есть ли у аккаунта подписка на план.
func (v *Viewer) IsSubscribedTo(planUID string) bool {
	_, ok := v.Subscriptions[planUID]
	return ok
}

// IsFollowing сообщает, фолловит ли аккаунт тренера.
func (v *Viewer) IsFollowing(trainerUID string) bool {
	_, ok := v.Following[trainerUID]
	return ok
}

// Owns сообщает, принадлежит ли план аккаунту.
func (v *Viewer) Owns(plan *models.Plan) bool {
	return v.UID == plan.TrainerUID
}

// ListTier возвращает уровень видимости плана в общем списке.
// Полные данные видят подписчики и любой аккаунт с ролью тренера.
func ListTier(viewer *Viewer, plan *models.Plan) Tier {
	if viewer.IsSubscribedTo(plan.UID) || viewer.Role == models.RoleTrainer {
		return TierFull
	}
	return TierPreview
}

// ReadTier возвращает уровень видимости при чтении одного плана.
// Полные данные видят только владелец и подписчик; роль тренера сама по
// себе доступа не даёт.
func ReadTier(viewer *Viewer, plan *models.Plan) Tier {
	if viewer.Owns(plan) || viewer.IsSubscribedTo(plan.UID) {
		return TierFull
	}
	return TierPreview
}

// CanCreatePlan проверяет право на создание плана: только роль тренера.
func CanCreatePlan(viewer *Viewer) error {
	if !viewer.Role.CanPublishPlans() {
		return ErrForbidden
	}
	return nil
}

// CanEditPlan проверяет право на изменение или удаление плана:
// только тренер-владелец.
func CanEditPlan(viewer *Viewer, plan *models.Plan) error {
	if !viewer.Owns(plan) {
		return ErrForbidden
	}
	return nil
}

// CheckSubscribe проверяет возможность подписки на план: любой
// аутентифицированный аккаунт, не подписанный на этот план ранее.
func CheckSubscribe(viewer *Viewer, plan *models.Plan) error {
	if viewer.IsSubscribedTo(plan.UID) {
		return ErrAlreadySubscribed
	}
	return nil
}

// CheckUnsubscribe проверяет возможность отписки: подписка должна существовать.
func CheckUnsubscribe(viewer *Viewer, planUID string) error {
	if !viewer.IsSubscribedTo(planUID) {
		return ErrNotSubscribed
	}
	return nil
}

// CheckFollow проверяет возможность зафолловить аккаунт target.
// Условия проверяются в фиксированном порядке: существование цели
// проверяет вызывающий код (404 до всех остальных проверок), затем роль
// цели, затем запрет фолловить себя, затем отсутствие дубликата.
func CheckFollow(viewer *Viewer, target *models.User) error {
	if target.Role != models.RoleTrainer {
		return ErrNotTrainer
	}
	if target.UID == viewer.UID {
		return ErrSelfFollow
	}
	if viewer.IsFollowing(target.UID) {
		return ErrAlreadyFollowing
	}
	return nil
}

// CheckUnfollow проверяет возможность отписаться от тренера:
// фолловинг должен существовать.
func CheckUnfollow(viewer *Viewer, trainerUID string) error {
	if !viewer.IsFollowing(trainerUID) {
		return ErrNotFollowing
	}
	return nil
}
