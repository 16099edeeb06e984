package ipm

// strategyPromptTemplate is filled with disease, crop, weather summary and
// field context. The disease name appears twice: once in the briefing and
// once inside the requested JSON shape.
const strategyPromptTemplate = `You are an expert integrated pest management (IPM) specialist.
Generate a comprehensive, sustainable pest management strategy based on the following information.

Disease/Pest Detected: %[1]s
Crop Type: %[2]s
Location Weather: %[3]s
Field Context: %[4]s

Provide your IPM strategy in the following JSON format:
{
    "strategy_name": "Name of the strategy",
    "disease_pest": "%[1]s",
    "risk_assessment": {
        "current_severity": "low/medium/high/critical",
        "spread_risk": "low/medium/high",
        "yield_impact_if_untreated": "X%% potential loss"
    },
    "immediate_actions": [
        {
            "action": "What to do",
            "timing": "When to do it",
            "priority": "high/medium/low"
        }
    ],
    "weekly_plan": [
        {
            "week": 1,
            "actions": ["action 1", "action 2"],
            "monitoring": "What to monitor",
            "expected_outcome": "What should improve"
        },
        {
            "week": 2,
            "actions": ["action 1"],
            "monitoring": "What to monitor",
            "expected_outcome": "Expected improvement"
        }
    ],
    "organic_solutions": [
        {
            "product": "Product name",
            "application": "How to apply",
            "frequency": "How often",
            "effectiveness": "Expected effectiveness %%"
        }
    ],
    "chemical_solutions": [
        {
            "product": "Product name",
            "active_ingredient": "Chemical name",
            "dosage": "X ml/L or g/L",
            "safety_period": "Days before harvest",
            "safety_precautions": ["precaution 1", "precaution 2"]
        }
    ],
    "companion_planting": [
        {
            "plant": "Plant name",
            "benefit": "How it helps",
            "placement": "Where to plant"
        }
    ],
    "biological_controls": [
        {
            "organism": "Beneficial organism",
            "target_pest": "What it controls",
            "application": "How to introduce"
        }
    ],
    "cultural_practices": [
        "Practice 1: Description",
        "Practice 2: Description"
    ],
    "monitoring_schedule": {
        "frequency": "Daily/Weekly/Bi-weekly",
        "what_to_check": ["symptom 1", "symptom 2"],
        "action_thresholds": "When to take action"
    },
    "prevention_for_next_season": [
        "Preventive measure 1",
        "Preventive measure 2"
    ],
    "weather_considerations": {
        "spray_timing": "Best conditions for spraying",
        "outbreak_risk_factors": ["factor 1", "factor 2"]
    },
    "success_metrics": {
        "week_1_target": "Expected improvement",
        "week_4_target": "Disease should be controlled",
        "season_end_goal": "Full recovery"
    }
}

Make the strategy practical, sustainable, and farmer-friendly. Prioritize organic solutions but include chemical options for severe cases.`

const quickRecommendationTemplate = `A farmer has detected %s in their %s crop.

Give a brief, friendly recommendation covering:
1. How serious is this? (1 sentence)
2. What should they do RIGHT NOW? (2-3 bullet points)
3. One organic solution and one chemical solution
4. How to prevent this in the future (1-2 tips)

Keep it concise and practical.`
