package terminal

const (
	labelCompany     = "ReyTech"
	labelDescription = "Climatização e Segurança Eletrônica"

	labelMenuStock   = "Estoque"
	labelMenuAdd     = "Novo Produto"
	labelMenuQuit    = "Sair"
	labelBack        = "Voltar"
	labelClose       = "Fechar"
	labelReload      = "Atualizar"
	labelPrompt      = "> "
	labelLoading     = "Carregando produtos..."
	labelEmpty       = "Nenhum produto localizado."
	labelLowStock    = "abaixo do mínimo"
	labelPrice       = "Preço:"
	labelCurrentQty  = "Quant. Atual:"
	labelMinimumQty  = "Quant. Mínima:"
	labelImage       = "Imagem:"
	labelSale        = "Venda:"
	labelDetailQty   = "Quantidade Atual:"
	labelDetailMin   = "Quantidade Mínima:"
	labelAdjustStock = "Acerto de Estoque"
	labelQtyInput    = "Digite a quantidade"
	labelIncrease    = "Registrar Entrada"
	labelDecrease    = "Registrar Saída"

	labelFieldName     = "Nome do Produto"
	labelFieldValue    = "Valor do Produto"
	labelFieldQuantity = "Quantidade Atual"
	labelFieldMinimum  = "Quantidade Mínima"
	labelPickImage     = "Escolher Imagem"
	labelNoImage       = "(nenhuma)"
	labelSave          = "Salvar Produto"
	labelSaving        = "Salvando..."
	labelImagePath     = "Caminho da imagem (vazio cancela):"
	labelInvalidValue  = "Valor inválido: use apenas um ponto decimal."
)
