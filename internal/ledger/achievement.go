package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequirementKind discriminates the achievement requirement variant.
type RequirementKind string

const (
	RequireTransactionCount RequirementKind = "transactions_count"
	RequireTotalSaved       RequirementKind = "total_saved"
	RequireStreakDays       RequirementKind = "streak_days"
	RequireBudgetsMet       RequirementKind = "budgets_met"
	RequireCategorySpending RequirementKind = "category_spending"
	RequireGoalCompleted    RequirementKind = "goal_completed"
)

// Requirement is the tagged variant an achievement is unlocked against.
// Count carries the threshold for the count-style kinds, Amount for the
// money-style kinds, Category for the category-spending cap.
type Requirement struct {
	Kind     RequirementKind `json:"kind"`
	Count    int             `json:"count,omitempty"`
	Amount   decimal.Decimal `json:"amount,omitempty"`
	Category string          `json:"category,omitempty"`
}

// Achievement is a gamification flag. Unlocking is monotonic: once Unlocked
// is set it is never cleared.
type Achievement struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Color       string      `json:"color"`
	Requirement Requirement `json:"requirement"`
	Unlocked    bool        `json:"unlocked"`
	UnlockedAt  *time.Time  `json:"unlocked_at,omitempty"`
}

// DefaultAchievements is the fixed set seeded on first use.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte("ach:first-step")),
			Title:       "First Step",
			Description: "Add your first transaction",
			Icon:        "star",
			Color:       "#FFD700",
			Requirement: Requirement{Kind: RequireTransactionCount, Count: 1},
		},
		{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte("ach:saver")),
			Title:       "Saver",
			Description: "Save 1000",
			Icon:        "coins",
			Color:       "#00C853",
			Requirement: Requirement{Kind: RequireTotalSaved, Amount: decimal.NewFromInt(1000)},
		},
		{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte("ach:consistent")),
			Title:       "Consistent",
			Description: "Track expenses for 7 days",
			Icon:        "flame",
			Color:       "#FF6B00",
			Requirement: Requirement{Kind: RequireStreakDays, Count: 7},
		},
		{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte("ach:budget-master")),
			Title:       "Budget Master",
			Description: "Stay within budget for 3 categories",
			Icon:        "target",
			Color:       "#3F51B5",
			Requirement: Requirement{Kind: RequireBudgetsMet, Count: 3},
		},
		{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte("ach:goal-achiever")),
			Title:       "Goal Achiever",
			Description: "Complete your first goal",
			Icon:        "check-circle",
			Color:       "#9C27B0",
			Requirement: Requirement{Kind: RequireGoalCompleted},
		},
	}
}

// DefaultCategories is the seed set for new databases: five income and nine
// expense categories.
func DefaultCategories() []Category {
	mk := func(name, icon, color string, t TransactionType) Category {
		return Category{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte("cat:"+string(t)+":"+name)),
			Name:      name,
			Icon:      icon,
			Color:     color,
			IsDefault: true,
			Type:      t,
		}
	}
	return []Category{
		mk("Salary", "banknote", "#00C853", TypeIncome),
		mk("Freelance", "briefcase", "#2196F3", TypeIncome),
		mk("Investment", "trending-up", "#9C27B0", TypeIncome),
		mk("Gift", "gift", "#E91E63", TypeIncome),
		mk("Other Income", "plus-circle", "#9E9E9E", TypeIncome),
		mk("Food", "utensils", "#FF9800", TypeExpense),
		mk("Transport", "car", "#2196F3", TypeExpense),
		mk("Entertainment", "tv", "#9C27B0", TypeExpense),
		mk("Shopping", "shopping-bag", "#E91E63", TypeExpense),
		mk("Bills", "file-text", "#F44336", TypeExpense),
		mk("Health", "heart", "#F44336", TypeExpense),
		mk("Education", "book", "#3F51B5", TypeExpense),
		mk("Travel", "plane", "#00BCD4", TypeExpense),
		mk("Other Expense", "minus-circle", "#9E9E9E", TypeExpense),
	}
}
