package llm

var AgentTools = []Tool{
	{
		Name:        "list_tasks",
		Description: "List the user's tasks with their durations, days, and priorities.",
		Parameters:  obj(nil),
	},
	{
		Name:        "create_task",
		Description: "Create a task to schedule into the weekly routine.",
		Parameters: objReq(map[string]any{
			"task_name":       prop("string", "What the task is"),
			"description":     prop("string", "Additional details or context"),
			"time_required":   prop("string", "Daily time needed, HH:MM:SS (e.g. '02:00:00' for two hours)"),
			"days_associated": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Weekday names the task applies to, e.g. ['Monday', 'Wednesday']"},
			"priority":        prop("string", "Priority: High, Medium, Low"),
			"is_fixed_time":   prop("boolean", "true if the task must start at a fixed clock time"),
			"fixed_time_slot": prop("string", "Start time HH:MM:SS, required when is_fixed_time is true"),
		}, "task_name", "time_required", "days_associated", "priority"),
	},
	{
		Name:        "update_task",
		Description: "Update a task by ID. Can change name, description, duration, days, priority, or fixed-time settings.",
		Parameters: objReq(map[string]any{
			"id":              prop("integer", "Task ID"),
			"task_name":       prop("string", "New name"),
			"description":     prop("string", "New description"),
			"time_required":   prop("string", "New daily duration, HH:MM:SS"),
			"days_associated": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "New weekday list"},
			"priority":        prop("string", "New priority: High, Medium, Low"),
			"fixed_time_slot": prop("string", "New fixed start time, HH:MM:SS"),
		}, "id"),
	},
	{
		Name:        "delete_task",
		Description: "Delete a task by ID.",
		Parameters: objReq(map[string]any{
			"id": prop("integer", "Task ID to delete"),
		}, "id"),
	},
	{
		Name:        "list_hobbies",
		Description: "List the shared hobby catalog. Use before adding to avoid duplicates.",
		Parameters:  obj(nil),
	},
	{
		Name:        "list_my_hobbies",
		Description: "List the hobbies the user has picked up for their routine.",
		Parameters:  obj(nil),
	},
	{
		Name:        "add_hobby",
		Description: "Add a hobby to the catalog and pick it up for the user in one step.",
		Parameters: objReq(map[string]any{
			"name":     prop("string", "Hobby name, e.g. 'Yoga'"),
			"category": prop("string", "Category, e.g. 'Fitness', 'Music'"),
		}, "name"),
	},
	{
		Name:        "drop_hobby",
		Description: "Remove a hobby from the user's routine by hobby ID. The catalog keeps it.",
		Parameters: objReq(map[string]any{
			"id": prop("integer", "Hobby ID to drop"),
		}, "id"),
	},
	{
		Name:        "get_settings",
		Description: "Get the user's planning preferences: day window, off-day toggle, notifications.",
		Parameters:  obj(nil),
	},
	{
		Name:        "update_settings",
		Description: "Update planning preferences. Omitted fields keep their current values.",
		Parameters: obj(map[string]any{
			"day_start_time":        prop("string", "Day start, HH:MM:SS"),
			"day_end_time":          prop("string", "Day end, HH:MM:SS"),
			"off_day_toggle":        prop("boolean", "true to plan tomorrow as a hobbies-only off day"),
			"notifications_enabled": prop("boolean", "true to enable the morning agenda message"),
		}),
	},
	{
		Name:        "generate_week",
		Description: "Generate a fresh weekly routine from the user's current tasks, hobbies, and settings, and make it their primary routine. This replaces the old one.",
		Parameters:  obj(nil),
	},
	{
		Name:        "regenerate_today",
		Description: "Regenerate only today's plan as a relaxed, hobbies-only off day. Other days keep their schedule.",
		Parameters:  obj(nil),
	},
	{
		Name:        "get_routine",
		Description: "Show the user's current routine with completion marks. Use before answering questions about their schedule.",
		Parameters: obj(map[string]any{
			"day": prop("string", "Optional weekday name to show just one day"),
		}),
	},
	{
		Name:        "mark_activity",
		Description: "Mark an activity in the current routine as done or not done.",
		Parameters: objReq(map[string]any{
			"day":      prop("string", "Weekday name, e.g. 'Monday'"),
			"activity": prop("string", "Activity name exactly as it appears in the routine"),
			"type":     prop("string", "Activity type: task or hobby"),
			"done":     prop("boolean", "true for completed, false to clear"),
		}, "day", "activity", "type", "done"),
	},
	{
		Name:        "get_time",
		Description: "Get the current date and time. Use this when reasoning about today, tomorrow, or the week.",
		Parameters:  obj(nil),
	},
}

// Helper functions for building JSON Schema objects.

func prop(typ, desc string) map[string]any {
	return map[string]any{"type": typ, "description": desc}
}

func obj(properties map[string]any) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
	}
}

func objReq(properties map[string]any, required ...string) map[string]any {
	s := obj(properties)
	s["required"] = required
	return s
}
