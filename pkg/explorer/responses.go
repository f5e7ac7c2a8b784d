package explorer

// cannedResponses is the lookup table of the mock executor, keyed by exact path
var cannedResponses = map[string]string{
	"/api/auth/me": `{"success":true,"data":{"id":"usr_123","email":"user@example.com","name":"Demo User","plan":"pro","credits":1250}}`,

	"/api/music/generate": `{"success":true,"data":{"id":"music_abc123","status":"processing","estimatedTime":45,"creditsUsed":10}}`,

	"/api/speech/generate": `{"success":true,"data":{"id":"speech_xyz789","audioUrl":"https://cdn.veeq.ai/speech/speech_xyz789.mp3","duration":3.2,"creditsUsed":1}}`,

	"/api/credits": `{"success":true,"data":{"balance":1250,"used":750,"plan":"pro","resetDate":"2025-02-01"}}`,

	"/api/models": `{"success":true,"data":[{"id":"veeq-music-v2","type":"music","name":"Veeq Music v2"},{"id":"veeq-tts-v1","type":"speech","name":"Veeq TTS v1"}]}`,

	"/api/voices": `{"success":true,"data":[{"id":"voice_tr_female_1","name":"Elif","language":"tr","gender":"female"},{"id":"voice_en_male_1","name":"James","language":"en","gender":"male"}]}`,
}

// CannedResponses returns a copy of the mock executor's default table
func CannedResponses() map[string]string {
	out := make(map[string]string, len(cannedResponses))
	for k, v := range cannedResponses {
		out[k] = v
	}
	return out
}
