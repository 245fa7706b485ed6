package main

// openapiYAML is served at /api/openapi.yaml and rendered by the swagger UI.
var openapiYAML = []byte(`openapi: 3.0.3
info:
  title: Leafline API
  description: Plant-care advisory and scheduling engine.
  version: "1.0"
paths:
  /api/plants/care-needed:
    get:
      summary: Partition the collection by care due now
      responses:
        "200":
          description: Plants needing water and fertilizer
  /api/plants/{id}/schedule:
    get:
      summary: Derived next watering/fertilizing dates for a plant
      parameters:
        - name: id
          in: path
          required: true
          schema: { type: string }
      responses:
        "200": { description: Plant with derived next-due dates }
        "404": { description: Plant not found }
  /api/plants/{id}/logs/{logId}/enrich:
    post:
      summary: Enrich a photographed care log into a journal entry
      parameters:
        - name: id
          in: path
          required: true
          schema: { type: string }
        - name: logId
          in: path
          required: true
          schema: { type: string }
      responses:
        "200": { description: Journal entry, or null for photo-less logs }
        "502": { description: Advisor unavailable or returned an incomplete result }
  /api/advisor/identify:
    post:
      summary: Identify the plant on a photo
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                image: { type: string, description: base64 or data URI }
      responses:
        "200": { description: Species, confidence and derived care defaults }
        "413": { description: Image exceeds the 20MB limit }
  /api/advisor/diagnose:
    post:
      summary: Diagnose a plant health problem from a photo
      responses:
        "200": { description: Issue, cause, solution, severity, confidence }
  /api/advisor/advice:
    post:
      summary: Personalized care advice for a plant
      responses:
        "200": { description: Staged action lists and problems }
  /api/advisor/seasonal-guide:
    post:
      summary: Seasonal care guide across the collection
      responses:
        "200": { description: Per-plant seasonal adjustments }
  /api/advisor/schedule:
    post:
      summary: Optimized weekly care schedule across the collection
      responses:
        "200": { description: Day-by-day task list and tips }
  /api/advisor/arrangement:
    post:
      summary: Arrangement suggestions for the collection
      responses:
        "200": { description: Suggestions and design notes }
  /api/advisor/insights:
    post:
      summary: Community care insights
      responses:
        "200": { description: Insights and trending topics }
  /api/advisor/ask:
    post:
      summary: Answer a free-form care question
      responses:
        "200": { description: Answer and tips }
  /api/advisor/growth:
    post:
      summary: Growth analysis from at least two photos
      responses:
        "200": { description: Assessment, rate, issues, recommendations }
  /api/advisor/verify-identity:
    post:
      summary: Verify a photographed plant against an expected species
      responses:
        "200": { description: Match flag, confidence, detected species }
`)
