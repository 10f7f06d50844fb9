package i18n

var ptBR = map[Code]string{
	CodePatternCompile:     "O padrão não pôde ser compilado: {{.detail}}",
	CodePatternEmpty:       "Digite um padrão para começar.",
	CodeFlagUnknown:        "Sinalizador(es) não reconhecido(s): {{.flags}}",
	CodeFlagWrongEngine:    "O(s) sinalizador(es) {{.flags}} não são suportados pelo motor {{.engine}} e serão ignorados.",
	CodeSubjectTooLong:     "O texto de teste é muito grande; a busca pode ficar lenta.",
	CodeEngineUnknown:      "Motor desconhecido {{.engine}}.",
	CodeEngineLoading:      "O motor Lua ainda está carregando. Tente novamente em instantes.",
	CodeEngineBootstrap:    "O motor Lua não conseguiu iniciar.",
	CodeEngineExecution:    "A execução da busca falhou.",
	CodeSnapshotCorrupt:    "A sessão salva não pôde ser restaurada.",
	CodeStorageUnavailable: "O armazenamento da sessão está indisponível; as alterações não serão salvas.",
	CodeNotFound:           "Não encontrado.",
	CodeSnippetKindUnknown: "Tipo de trecho desconhecido {{.kind}}.",
}
