package controller

// User-facing dialog messages.
const (
	MsgServerUnavailable = "O servidor está indisponível. Tente novamente mais tarde."
	MsgConfirmDelete     = "Você realmente deseja excluir este produto?"
	MsgDeleteFailed      = "Erro ao excluir o produto. Tente novamente mais tarde."
	MsgProductSaved      = "Produto salvo com sucesso!"
	MsgSaveFailed        = "Erro ao salvar o produto."
	MsgPermissionDenied  = "É necessária permissão para acessar suas fotos."
	MsgImagePickFailed   = "Não foi possível selecionar a imagem."
	MsgIncreaseFailed    = "Erro ao registrar entrada"
	MsgDecreaseFailed    = "Erro ao registrar saída"
)
